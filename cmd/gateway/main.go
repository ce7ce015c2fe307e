// APIゲートウェイのエントリポイント。
// クライアントからの呼び出しを各バックエンド（Identity・Routes・
// Stations・Tickets）へ変換・転送する。外部からアクセス可能な
// 唯一のサービスであり、応答は統一エンベロープに正規化される。
package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/railhub/gateway/internal/gateway"
	"github.com/railhub/gateway/internal/registry"
)

func main() {
	port := getEnvOr("PORT", "8080")

	reg, err := registry.New(map[string]string{
		registry.ServiceIdentity: getEnvOr("IDENTITY_URL", "http://localhost:8081"),
		registry.ServiceRoutes:   getEnvOr("ROUTES_URL", "http://localhost:8082"),
		registry.ServiceStations: getEnvOr("STATIONS_URL", "http://localhost:8083"),
		registry.ServiceTickets:  getEnvOr("TICKETS_URL", "http://localhost:8084"),
	})
	if err != nil {
		log.Fatalf("バックエンドアドレスの設定が不正: %v", err)
	}

	timeout := time.Duration(getEnvIntOr("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second
	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	server, err := gateway.NewServer(port, reg, timeout, []string{frontendURL})
	if err != nil {
		log.Fatalf("ゲートウェイサーバーの初期化に失敗: %v", err)
	}

	log.Printf("ゲートウェイサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("ゲートウェイサービスの起動に失敗: %v", err)
	}
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvIntOr は整数の環境変数を取得し、未設定・不正な場合はデフォルト値を返す。
func getEnvIntOr(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("%s の値 %q を整数として解釈できないためデフォルト値 %d を使用します", key, v, defaultValue)
		return defaultValue
	}
	return n
}
