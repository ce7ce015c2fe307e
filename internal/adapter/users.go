package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/railhub/gateway/internal/registry"
	"github.com/railhub/gateway/pkg/httpclient"
)

// Credentials はログインでゲートウェイが受け取るボディ。
type Credentials struct {
	// Email はログイン用メールアドレス。
	Email string `json:"email" validate:"required,email"`
	// Password はパスワード。内容の検証はIdentityバックエンドが行う。
	Password string `json:"password" validate:"required"`
}

// Registration は利用者登録でゲートウェイが受け取るボディ。
type Registration struct {
	// Email は登録するメールアドレス。
	Email string `json:"email" validate:"required,email"`
	// Password はパスワード。
	Password string `json:"password" validate:"required"`
	// FullName は氏名。
	FullName string `json:"fullName" validate:"required"`
}

// registrationBody はIdentityバックエンドが期待するsnake_caseのボディ。
type registrationBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginResult はゲートウェイがクライアントへ返すログイン結果。
// Identityバックエンドのsnake_caseフィールドを境界で変換したもの。
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
}

// loginWire はIdentityバックエンドのログイン応答そのままの形。
type loginWire struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
}

// User はゲートウェイがクライアントへ返す利用者表現。
type User struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"isAdmin"`
}

// userWire はIdentityバックエンドの利用者応答そのままの形。
type userWire struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login はログインの送信内容を組み立てる。
func Login(c Credentials) (Call, error) {
	if err := checkStruct(c); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceIdentity,
		Request: httpclient.Request{
			Method: http.MethodPost,
			Path:   "/login",
			Body:   c,
		},
	}, nil
}

// Register は利用者登録の送信内容を組み立てる。
func Register(r Registration) (Call, error) {
	if err := checkStruct(r); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceIdentity,
		Request: httpclient.Request{
			Method: http.MethodPost,
			Path:   "/register",
			Body: registrationBody{
				Email:    r.Email,
				Password: r.Password,
				FullName: r.FullName,
			},
		},
	}, nil
}

// Session はセッション情報取得の送信内容を組み立てる。トークン必須。
func Session() Call {
	return Call{
		Service: registry.ServiceIdentity,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/session",
		},
		RequiresAuth: true,
	}
}

// GetUser は利用者1件取得の送信内容を組み立てる。トークン必須。
func GetUser(id string) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceIdentity,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/users/" + url.PathEscape(id),
		},
		RequiresAuth: true,
	}, nil
}

// DecodeLoginResult はIdentityバックエンドのログイン応答を
// ゲートウェイの命名へ変換する。
func DecodeLoginResult(body []byte) (*LoginResult, error) {
	var w loginWire
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("ログイン応答の解析に失敗: %w", err)
	}
	return &LoginResult{
		AccessToken: w.AccessToken,
		TokenType:   w.TokenType,
		UserID:      w.UserID,
		Email:       w.Email,
		IsAdmin:     w.IsAdmin,
	}, nil
}

// DecodeUser はIdentityバックエンドの利用者応答を
// ゲートウェイの命名へ変換する。
func DecodeUser(body []byte) (*User, error) {
	var w userWire
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("利用者応答の解析に失敗: %w", err)
	}
	return &User{
		UserID:   w.UserID,
		Email:    w.Email,
		FullName: w.FullName,
		IsAdmin:  w.IsAdmin,
	}, nil
}
