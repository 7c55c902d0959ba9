// Package supabase — клиент REST API Supabase для таблиц анкет и операторов
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lead-triage-telegram-bot/internal/domain"
)

const (
	leadsPath     = "/rest/v1/bot"
	allowlistPath = "/rest/v1/allowed_users"
)

type Client struct {
	BaseURL    string
	Key        string
	HTTPClient *http.Client
}

func NewClient(baseURL, key string, opts ...func(*Client)) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Key:        key,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// Insert создает анкету; статус не передаем — таблица сама выставит "new"
func (c *Client) Insert(ctx context.Context, name, phone, company, comments string) error {
	body := map[string]string{
		"name":     name,
		"phone":    phone,
		"company":  company,
		"comments": comments,
	}
	return c.send(ctx, http.MethodPost, leadsPath, body)
}

// NextNew возвращает первую анкету со статусом "new" по возрастанию id;
// (nil, nil) — новых анкет нет
func (c *Client) NextNew(ctx context.Context) (*domain.Lead, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("status", "eq.new")
	q.Set("order", "id")
	var leads []domain.Lead
	if err := c.get(ctx, leadsPath, q, &leads); err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

func (c *Client) ListAll(ctx context.Context) ([]domain.Lead, error) {
	q := url.Values{}
	q.Set("select", "id,name,phone,status")
	var leads []domain.Lead
	if err := c.get(ctx, leadsPath, q, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetOne возвращает анкету по id; (nil, nil) — анкета не найдена
func (c *Client) GetOne(ctx context.Context, id int64) (*domain.Lead, error) {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))
	q.Set("select", "id,name,phone,company,comments")
	var leads []domain.Lead
	if err := c.get(ctx, leadsPath, q, &leads); err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// UpdateFields — частичное обновление анкеты (статус и/или комментарий)
func (c *Client) UpdateFields(ctx context.Context, id int64, patch map[string]string) error {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))
	return c.send(ctx, http.MethodPatch, leadsPath+"?"+q.Encode(), patch)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))
	return c.send(ctx, http.MethodDelete, leadsPath+"?"+q.Encode(), nil)
}

// IsAllowed проверяет оператора по удаленному списку. Любая ошибка
// транспорта или разбора ответа трактуется как запрет.
func (c *Client) IsAllowed(ctx context.Context, userID int64) (bool, error) {
	q := url.Values{}
	q.Set("select", "telegram_id")
	q.Set("telegram_id", "eq."+strconv.FormatInt(userID, 10))
	var rows []struct {
		TelegramID int64 `json:"telegram_id"`
	}
	if err := c.get(ctx, allowlistPath, q, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return non2xxError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase: некорректный ответ: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) error {
	endpoint := c.BaseURL + path
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return non2xxError(resp)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.Key)
	req.Header.Set("Authorization", "Bearer "+c.Key)
}

func non2xxError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("supabase non-2xx: %d: %s", resp.StatusCode, string(body))
}
