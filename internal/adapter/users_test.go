package adapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/railhub/gateway/internal/registry"
)

// TestLogin はログインアダプタを検証する。
func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("ログインは/loginへのPOSTでトークン不要であること", func(t *testing.T) {
		t.Parallel()

		call, err := Login(Credentials{Email: "ana@example.com", Password: "secreto"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if call.Service != registry.ServiceIdentity {
			t.Errorf("Service = %q", call.Service)
		}
		if call.Request.Method != http.MethodPost || call.Request.Path != "/login" {
			t.Errorf("Method = %q, Path = %q", call.Request.Method, call.Request.Path)
		}
		if call.RequiresAuth {
			t.Error("ログインにトークンは不要のはず")
		}
	})

	t.Run("メールアドレス形式でない場合はValidationErrorになること", func(t *testing.T) {
		t.Parallel()

		_, err := Login(Credentials{Email: "ana", Password: "secreto"})
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("ValidationErrorを期待したが err = %v", err)
		}
	})
}

// TestRegister は登録アダプタのボディ変換を検証する。
func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("氏名フィールドがfull_nameに変換されること", func(t *testing.T) {
		t.Parallel()

		call, err := Register(Registration{Email: "ana@example.com", Password: "secreto", FullName: "Ana García"})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		body, ok := call.Request.Body.(registrationBody)
		if !ok {
			t.Fatalf("Body型 = %T", call.Request.Body)
		}
		if body.FullName != "Ana García" {
			t.Errorf("FullName = %q", body.FullName)
		}
	})
}

// TestAuthRequiredCalls はトークン必須指定を検証する。
func TestAuthRequiredCalls(t *testing.T) {
	t.Parallel()

	t.Run("セッション取得はトークン必須であること", func(t *testing.T) {
		t.Parallel()

		call := Session()
		if !call.RequiresAuth {
			t.Error("RequiresAuth = false, want true")
		}
		if call.Request.Path != "/session" {
			t.Errorf("Path = %q", call.Request.Path)
		}
	})

	t.Run("利用者取得はトークン必須で/users/{id}を使うこと", func(t *testing.T) {
		t.Parallel()

		call, err := GetUser("u-1")
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if !call.RequiresAuth {
			t.Error("RequiresAuth = false, want true")
		}
		if call.Request.Path != "/users/u-1" {
			t.Errorf("Path = %q", call.Request.Path)
		}
	})
}

// TestDecodeLoginResult はログイン応答のフィールド変換を検証する。
func TestDecodeLoginResult(t *testing.T) {
	t.Parallel()

	t.Run("snake_caseの応答がcamelCaseへ変換されること", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"access_token":"tok-1","token_type":"bearer","user_id":"u-1","email":"ana@example.com","is_admin":true}`)
		got, err := DecodeLoginResult(body)
		if err != nil {
			t.Fatalf("DecodeLoginResult() error = %v", err)
		}

		want := LoginResult{AccessToken: "tok-1", TokenType: "bearer", UserID: "u-1", Email: "ana@example.com", IsAdmin: true}
		if *got != want {
			t.Errorf("result = %+v, want %+v", *got, want)
		}
	})

	t.Run("JSONとして不正な応答はエラーになること", func(t *testing.T) {
		t.Parallel()

		if _, err := DecodeLoginResult([]byte(`{"access_token":`)); err == nil {
			t.Fatal("不正JSONでエラーが返らなかった")
		}
	})
}

// TestDecodeUser は利用者応答のフィールド変換を検証する。
func TestDecodeUser(t *testing.T) {
	t.Parallel()

	t.Run("snake_caseの応答がcamelCaseへ変換されること", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"user_id":"u-1","email":"ana@example.com","full_name":"Ana García","is_admin":false}`)
		got, err := DecodeUser(body)
		if err != nil {
			t.Fatalf("DecodeUser() error = %v", err)
		}
		if got.UserID != "u-1" || got.FullName != "Ana García" {
			t.Errorf("user = %+v", *got)
		}
	})
}
