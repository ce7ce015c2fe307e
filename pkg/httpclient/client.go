package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// TransportKind はトランスポート障害の種別。
type TransportKind string

const (
	// KindTimeout はタイムアウトによる失敗。
	KindTimeout TransportKind = "timeout"
	// KindConnectionRefused は接続拒否による失敗。
	KindConnectionRefused TransportKind = "connection_refused"
	// KindDNSFailure は名前解決の失敗。
	KindDNSFailure TransportKind = "dns_failure"
	// KindOther はその他のトランスポート障害。
	KindOther TransportKind = "other"
)

// TransportError はバックエンドとの通信自体に失敗したことを表すエラー。
// HTTPレスポンスが返ってきた場合（ステータスコードに関わらず）はこのエラーにはならない。
type TransportError struct {
	// Kind は障害の種別。
	Kind TransportKind
	// cause は元となったエラー。内部アドレスを含むためクライアントには公開しない。
	cause error
}

// Error はerrorインターフェースを実装する。
func (e *TransportError) Error() string {
	return fmt.Sprintf("バックエンドとの通信に失敗: kind=%s: %v", e.Kind, e.cause)
}

// Unwrap は元のエラーを返す。
func (e *TransportError) Unwrap() error {
	return e.cause
}

// Request はバックエンドへの1回の送信リクエスト。
// リクエストごとに構築・破棄され、共有されることはない。
type Request struct {
	// Method はHTTPメソッド。
	Method string
	// Path はベースURLに連結されるパス。
	Path string
	// Query はクエリパラメータ。url.Values.Encodeによりキー順で決定的に並ぶ。
	Query url.Values
	// Body はJSONエンコードされるリクエストボディ。nilなら送信しない。
	Body any
	// BearerToken は付与するBearerトークン。空なら付与しない。
	BearerToken string
	// RequestID は追跡用のX-Request-IDヘッダー値。空なら付与しない。
	RequestID string
}

// Response はバックエンドからの生のレスポンス。
type Response struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
}

// Client は1つのバックエンドサービスへのディスパッチを担うクライアント。
// コネクションプールを共有するため、バックエンドごとに1つ生成して使い回す。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先サービスのベースURL。
	baseURL string
	// timeout は1回の送信に適用する上限時間。
	timeout time.Duration
}

// DefaultTimeout はバックエンド呼び出しのデフォルトタイムアウト。
const DefaultTimeout = 30 * time.Second

// New は新しいディスパッチ用クライアントを生成する。
// baseURLには接続先サービスのベースURL（例: "http://tickets:8084"）を指定する。
// timeoutが0以下の場合はDefaultTimeoutを使用する。
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		// タイムアウトはDoでコンテキストに載せるため、http.Client側には設定しない。
		// 呼び出し元のコンテキストが切れた場合も送信中の呼び出しを中断できる。
		httpClient: &http.Client{},
		baseURL:    baseURL,
		timeout:    timeout,
	}
}

// BaseURL は接続先のベースURLを返す。
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do はリクエストを1回送信し、生のレスポンスを返す。
// HTTPレスポンスが返った場合はステータスコードに関わらず成功として扱い、
// 通信自体の失敗のみTransportErrorとして返す。リトライは行わない。
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if r.Body != nil {
		jsonBody, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	// ヘッダーはこのリクエスト専用。共有クライアントには何も残さない。
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.BearerToken)
	}
	if r.RequestID != "" {
		req.Header.Set("X-Request-ID", r.RequestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Kind: classify(err), cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Kind: classify(err), cause: err}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// classify はトランスポートエラーの種別を判定する。
func classify(err error) TransportKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNSFailure
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindConnectionRefused
	}
	return KindOther
}
