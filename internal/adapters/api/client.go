package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/utils"

	"github.com/google/uuid"
)

const maxBody = 8 << 20

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, cli *http.Client) *Client {
	if cli == nil {
		cli = &http.Client{}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: cli}
}

func (c *Client) JSON(ctx context.Context, sess models.Session, req ports.Request) (any, error) {
	resp, err := c.do(ctx, sess, req, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		log.Printf("[API][ERR] read body path=%q: %v", req.Path, err)
		return nil, &Error{Status: resp.StatusCode, Err: err}
	}
	if len(raw) > maxBody {
		log.Printf("[API][ERR] body over %d bytes path=%q", maxBody, req.Path)
		return nil, &Error{Status: resp.StatusCode, Err: ErrBodyTooLarge}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		log.Printf("[API][ERR] non-JSON body path=%q content_type=%q: %v", req.Path, resp.Header.Get("Content-Type"), err)
		return nil, &Error{Status: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrInvalidJSON, err)}
	}
	return out, nil
}

func (c *Client) Download(ctx context.Context, sess models.Session, req ports.Request) (io.ReadCloser, ports.Meta, error) {
	resp, err := c.do(ctx, sess, req, "application/pdf, application/octet-stream")
	if err != nil {
		return nil, ports.Meta{}, err
	}

	size := resp.ContentLength
	if size < 0 {
		size = -1
	}
	meta := ports.Meta{
		Source:      "https",
		ContentType: resp.Header.Get("Content-Type"),
		Size:        size,
		Filename:    utils.FilenameFromDisposition(resp.Header.Get("Content-Disposition"), ""),
	}
	log.Printf("[API][DOWNLOAD][OK] path=%q content_type=%q size=%d filename=%q", req.Path, meta.ContentType, meta.Size, meta.Filename)
	return resp.Body, meta, nil
}

func (c *Client) do(ctx context.Context, sess models.Session, req ports.Request, accept string) (*http.Response, error) {
	if strings.TrimSpace(sess.Token) == "" {
		return nil, ErrNoSession
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", req.Path, err)
		}
		body = bytes.NewReader(b)
	}

	reqID := uuid.NewString()
	log.Printf("[API][START] id=%s method=%s path=%q", reqID, method, req.Path)

	hreq, err := http.NewRequestWithContext(ctx, method, c.endpoint(req.Path, req.Query), body)
	if err != nil {
		log.Printf("[API][ERR] build request: %v", err)
		return nil, &Error{Err: err}
	}
	hreq.Header.Set("Authorization", "Bearer "+sess.Token)
	hreq.Header.Set("Accept", accept)
	hreq.Header.Set("X-Request-ID", reqID)
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(hreq)
	if err != nil {
		log.Printf("[API][ERR] id=%s do request: %v", reqID, err)
		return nil, &Error{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := messageFrom(raw)
		log.Printf("[API][ERR] id=%s status=%d message=%q", reqID, resp.StatusCode, msg)
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	log.Printf("[API][OK] id=%s status=%d", reqID, resp.StatusCode)
	return resp, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
