package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ChatRecord is one usage-history row as published by the backend.
type ChatRecord struct {
	ID                   int64     `json:"id"`
	TotalCreditLeft      float64   `json:"total_credit_left"`
	TotalBonusCreditLeft float64   `json:"total_bonus_credit_left"`
	CreatedAt            time.Time `json:"created_at"`
}

// Credit is the remaining balance shown per row: purchased plus bonus credit.
func (r ChatRecord) Credit() float64 {
	return r.TotalCreditLeft + r.TotalBonusCreditLeft
}

// ChatHistoryPage is one server-side page of usage history.
type ChatHistoryPage struct {
	List       []ChatRecord `json:"list"`
	TotalCount int          `json:"totalCount"`
}

// ChatHistory fetches one page of the visitor's usage history.
//
// The backend's query naming is inverted relative to its meaning: `offset`
// carries the page size and `page` the index of the first row.
func (c *Client) ChatHistory(ctx context.Context, pageSize, firstRow int) (ChatHistoryPage, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(pageSize))
	query.Set("page", strconv.Itoa(firstRow))

	resp, err := c.get(ctx, "/api/chat-history?"+query.Encode())
	if err != nil {
		return ChatHistoryPage{}, err
	}

	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return ChatHistoryPage{}, errors.Join(ErrUnexpectedStatus, fmt.Errorf("chat-history returned %d", resp.StatusCode))
	}

	var page ChatHistoryPage
	if err := decode(resp, &page); err != nil {
		return ChatHistoryPage{}, fmt.Errorf("apiclient: decode chat history: %w", err)
	}
	return page, nil
}
