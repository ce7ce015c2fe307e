package translate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/railhub/gateway/internal/adapter"
	"github.com/railhub/gateway/internal/registry"
	"github.com/railhub/gateway/pkg/httpclient"
)

// Response はゲートウェイがクライアントへ返す唯一の応答形。
// どのバックエンドが応答した場合でもこの形に正規化される。
type Response struct {
	// Success は処理が成功したかどうか。
	Success bool `json:"success"`
	// Message は利用者向けメッセージ。失敗時はエラー理由。
	Message string `json:"message"`
	// Data は成功時のペイロード。失敗時は省略される。
	Data any `json:"data,omitempty"`
}

// SerializationError はバックエンドの2xx応答が期待した形に
// 解析できなかったことを表すエラー。
type SerializationError struct {
	// cause は解析エラー。クライアントには公開しない。
	cause error
}

// Error はerrorインターフェースを実装する。
func (e *SerializationError) Error() string {
	return fmt.Sprintf("バックエンド応答の解析に失敗: %v", e.cause)
}

// Unwrap は元のエラーを返す。
func (e *SerializationError) Unwrap() error {
	return e.cause
}

// UnauthorizedError はトークン必須の操作にトークンが添付されて
// いなかったことを表すエラー。送信前に検出される。
type UnauthorizedError struct{}

// Error はerrorインターフェースを実装する。
func (e *UnauthorizedError) Error() string {
	return "認証トークンがありません"
}

// successMessage は成功応答の既定メッセージ。
const successMessage = "OK"

// Success は成功エンベロープを生成する。
// アダプタ側で応答を独自に変換した場合に使う。
func Success(status int, data any) (int, Response) {
	return status, Response{Success: true, Message: successMessage, Data: data}
}

// FromBackend はバックエンドの生応答をエンベロープへ写す。
// 2xxの場合はボディをoutへ解析して返す（outがnilならdataなし）。
// 非2xxの場合はステータスコードを透過し、バックエンドのエラーボディを
// メッセージとしてそのまま返す。
func FromBackend(resp *httpclient.Response, out any) (int, Response) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(resp.Body) == 0 {
			return resp.StatusCode, Response{Success: true, Message: successMessage}
		}
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return FromError(&SerializationError{cause: err})
		}
		return Success(resp.StatusCode, out)
	}

	return resp.StatusCode, Response{Success: false, Message: strings.TrimSpace(string(resp.Body))}
}

// FromError は送信前後のエラーをエンベロープへ写す。
// トランスポート障害やシリアライズ失敗の詳細はログにのみ残し、
// クライアントには汎用メッセージを返す。
func FromError(err error) (int, Response) {
	var valErr *adapter.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, Response{Success: false, Message: valErr.Error()}
	}

	var authErr *UnauthorizedError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, Response{Success: false, Message: "Bearerトークンが必要です"}
	}

	var transErr *httpclient.TransportError
	if errors.As(err, &transErr) {
		log.Printf("トランスポート障害: %v", transErr)
		if transErr.Kind == httpclient.KindTimeout {
			return http.StatusGatewayTimeout, Response{Success: false, Message: "バックエンドが時間内に応答しませんでした"}
		}
		return http.StatusBadGateway, Response{Success: false, Message: "バックエンドに接続できませんでした"}
	}

	var serErr *SerializationError
	if errors.As(err, &serErr) {
		log.Printf("シリアライズ障害: %v", serErr)
		return http.StatusBadGateway, Response{Success: false, Message: "バックエンドの応答を解釈できませんでした"}
	}

	var confErr *registry.ConfigurationError
	if errors.As(err, &confErr) {
		// 起動時検証を通っていれば到達しない。万一の場合も内部情報は出さない。
		log.Printf("設定障害: %v", confErr)
		return http.StatusInternalServerError, Response{Success: false, Message: "ゲートウェイの設定に問題があります"}
	}

	log.Printf("予期しないエラー: %v", err)
	return http.StatusInternalServerError, Response{Success: false, Message: "内部エラーが発生しました"}
}

// Serialization は解析エラーをSerializationErrorとして包む。
// アダプタのデコード処理が失敗した場合に使う。
func Serialization(cause error) error {
	return &SerializationError{cause: cause}
}
