// Package client provides common HTTP and JSON-RPC request helpers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/justmint/JustMint/log"
)

const (
	defaultTimeout          = 60               // seconds
	defaultSlowTimeout      = 300              // seconds
	maxReadContentLength    = 1024 * 1024 * 10 // 10M
	defaultIdleConnsPerHost = 10
)

var (
	httpCtx = context.Background()

	httpClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: defaultIdleConnsPerHost,
		},
	}
)

// Request holds a prepared request to send
type Request struct {
	Method  string
	Params  interface{}
	ID      int
	Timeout int // seconds
}

// NewRequest new request
func NewRequest(method string, params ...interface{}) *Request {
	return &Request{
		Method:  method,
		Params:  params,
		ID:      int(time.Now().UnixNano()),
		Timeout: defaultTimeout,
	}
}

// NewRequestWithTimeout new request with timeout
func NewRequestWithTimeout(timeout int, method string, params ...interface{}) *Request {
	req := NewRequest(method, params...)
	req.Timeout = timeout
	return req
}

// HTTPGet http get
func HTTPGet(url string, params, headers map[string]string, timeout int) (*http.Response, error) {
	return HTTPGetWithContext(httpCtx, url, params, headers, timeout)
}

// HTTPGetWithContext http get with context
func HTTPGetWithContext(ctx context.Context, url string, params, headers map[string]string, timeout int) (*http.Response, error) {
	return doRequest(ctx, http.MethodGet, url, nil, params, headers, timeout)
}

// HTTPHead http head, for existence checks
func HTTPHead(url string, timeout int) (*http.Response, error) {
	return doRequest(httpCtx, http.MethodHead, url, nil, nil, nil, timeout)
}

// HTTPPost http post with json body
func HTTPPost(url string, body interface{}, params, headers map[string]string, timeout int) (*http.Response, error) {
	return HTTPPostWithContext(httpCtx, url, body, params, headers, timeout)
}

// HTTPPostWithContext http post with context
func HTTPPostWithContext(ctx context.Context, url string, body interface{}, params, headers map[string]string, timeout int) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("post marshal body error: %w", err)
	}
	if headers == nil {
		headers = map[string]string{}
	}
	if _, exist := headers["Content-Type"]; !exist {
		headers["Content-Type"] = "application/json"
	}
	return doRequest(ctx, http.MethodPost, url, bytes.NewReader(jsonData), params, headers, timeout)
}

// HTTPRawPost http post with raw binary body
func HTTPRawPost(url string, body []byte, params, headers map[string]string, timeout int) (*http.Response, error) {
	return doRequest(httpCtx, http.MethodPost, url, bytes.NewReader(body), params, headers, timeout)
}

func doRequest(ctx context.Context, method, reqURL string, body io.Reader, params, headers map[string]string, timeout int) (*http.Response, error) {
	if len(params) > 0 {
		vals := make(url.Values)
		for k, v := range params {
			vals.Set(k, v)
		}
		if strings.Contains(reqURL, "?") {
			reqURL += "&" + vals.Encode()
		} else {
			reqURL += "?" + vals.Encode()
		}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request error: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Trace("http request error", "method", method, "url", reqURL, "err", err)
		return nil, err
	}
	return resp, nil
}

// GetResultFromJSONResponse get result from json response
func GetResultFromJSONResponse(result interface{}, resp *http.Response) error {
	body, err := ReadResponseBody(resp)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("unmarshal body error, body is \"%v\" err=\"%w\"", string(body), err)
	}
	return nil
}

// ReadResponseBody read body and check status code
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadContentLength))
	if err != nil {
		return nil, fmt.Errorf("read body error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wrong response status %v. message: %v", resp.StatusCode, string(body))
	}
	return body, nil
}
