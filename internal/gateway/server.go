package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/railhub/gateway/internal/adapter"
	"github.com/railhub/gateway/internal/registry"
	"github.com/railhub/gateway/internal/translate"
	"github.com/railhub/gateway/pkg/httpclient"
	"github.com/railhub/gateway/pkg/middleware"
)

// Server はAPIゲートウェイのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// clients はバックエンドごとのディスパッチ用クライアント。
	// コネクションプールを共有するため起動時に1つずつ生成する。
	clients map[string]*httpclient.Client
}

// NewServer は新しいゲートウェイサーバーを生成する。
// レジストリに登録された全バックエンドのクライアントをここで構築するため、
// アドレスの不備は起動時に検出される。
func NewServer(port string, reg *registry.Registry, timeout time.Duration, allowedOrigins []string) (*Server, error) {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(allowedOrigins))

	services := []string{
		registry.ServiceIdentity,
		registry.ServiceRoutes,
		registry.ServiceStations,
		registry.ServiceTickets,
	}
	clients := make(map[string]*httpclient.Client, len(services))
	for _, svc := range services {
		base, err := reg.Resolve(svc)
		if err != nil {
			return nil, fmt.Errorf("バックエンドクライアントの構築に失敗: %w", err)
		}
		clients[svc] = httpclient.New(base, timeout)
	}

	s := &Server{
		router:  router,
		port:    port,
		clients: clients,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	// 認証・利用者（Identityバックエンド）
	auth := api.Group("/auth")
	{
		auth.POST("/login", s.handleLogin())
		auth.POST("/register", s.handleRegister())
		auth.GET("/session", s.handleSession())
		auth.POST("/logout", s.handleLogout())
		auth.GET("/users/:id", s.handleGetUser())
	}

	// 路線（Routesバックエンド）
	routes := api.Group("/routes")
	{
		routes.GET("", s.handleListRoutes())
		routes.POST("", s.handleCreateRoute())
		routes.GET("/:id", s.handleGetRoute())
		routes.PUT("/:id", s.handleUpdateRoute())
		routes.DELETE("/:id", s.handleDeleteRoute())
	}

	// 切符（Ticketsバックエンド）
	tickets := api.Group("/tickets")
	{
		tickets.GET("", s.handleListTickets())
		tickets.GET("/:id", s.handleGetTicket())
		tickets.POST("/add", s.handleCreateTicket())
		tickets.PUT("/update/:id", s.handleUpdateTicket())
		tickets.DELETE("/delete/:id", s.handleDeleteTicket())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}

// writeError はエラーをエンベロープへ変換して書き出す。
func writeError(c *gin.Context, err error) {
	status, env := translate.FromError(err)
	c.JSON(status, env)
}

// dispatch は認証の添付と送信を行う。トークン必須の呼び出しにトークンが
// 無い場合は送信せずに401を書き出す。送信に失敗した場合もエンベロープを
// 書き出し、falseを返す。
func (s *Server) dispatch(c *gin.Context, call adapter.Call) (*httpclient.Response, bool) {
	token, hasToken := bearerToken(c.GetHeader("Authorization"))
	if call.RequiresAuth && !hasToken {
		writeError(c, &translate.UnauthorizedError{})
		return nil, false
	}
	if hasToken {
		call.Request.BearerToken = token
	}
	call.Request.RequestID = middleware.GetRequestID(c)

	client, ok := s.clients[call.Service]
	if !ok {
		writeError(c, &registry.ConfigurationError{Service: call.Service, Reason: "クライアントが構築されていません"})
		return nil, false
	}

	// inboundの切断はコンテキスト経由でoutboundの中断につながる
	resp, err := client.Do(c.Request.Context(), call.Request)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return resp, true
}

// forward は送信内容を実行し、応答をそのままエンベロープへ写して書き出す。
// outは2xx応答の宣言形。nilの場合はdataなしで返す。
func (s *Server) forward(c *gin.Context, call adapter.Call, out any) {
	resp, ok := s.dispatch(c, call)
	if !ok {
		return
	}
	status, env := translate.FromBackend(resp, out)
	c.JSON(status, env)
}

// bindJSON はリクエストボディをJSONとして読み込む。失敗時は400を書き出す。
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		writeError(c, &adapter.ValidationError{Msg: "リクエストボディをJSONとして解釈できません"})
		return false
	}
	return true
}

// handleLogin はログインを処理するハンドラを返す。
// Identityバックエンドのsnake_case応答を境界で変換して返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds adapter.Credentials
		if !bindJSON(c, &creds) {
			return
		}

		call, err := adapter.Login(creds)
		if err != nil {
			writeError(c, err)
			return
		}

		resp, ok := s.dispatch(c, call)
		if !ok {
			return
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			status, env := translate.FromBackend(resp, nil)
			c.JSON(status, env)
			return
		}

		result, err := adapter.DecodeLoginResult(resp.Body)
		if err != nil {
			writeError(c, translate.Serialization(err))
			return
		}
		status, env := translate.Success(resp.StatusCode, result)
		c.JSON(status, env)
	}
}

// handleRegister は利用者登録を処理するハンドラを返す。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var reg adapter.Registration
		if !bindJSON(c, &reg) {
			return
		}

		call, err := adapter.Register(reg)
		if err != nil {
			writeError(c, err)
			return
		}
		s.forwardUser(c, call)
	}
}

// handleSession はセッション情報取得を処理するハンドラを返す。トークン必須。
func (s *Server) handleSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.forwardUser(c, adapter.Session())
	}
}

// handleLogout はログアウトを処理するハンドラを返す。
// トークンはステートレスにIdentityバックエンドが管理しているため、
// ゲートウェイはローカルの応答のみ返す。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, translate.Response{Success: true, Message: "セッションを終了しました"})
	}
}

// handleGetUser は利用者取得を処理するハンドラを返す。トークン必須。
func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		call, err := adapter.GetUser(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		s.forwardUser(c, call)
	}
}

// forwardUser はIdentityバックエンドの利用者応答を変換しつつ転送する。
func (s *Server) forwardUser(c *gin.Context, call adapter.Call) {
	resp, ok := s.dispatch(c, call)
	if !ok {
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status, env := translate.FromBackend(resp, nil)
		c.JSON(status, env)
		return
	}

	user, err := adapter.DecodeUser(resp.Body)
	if err != nil {
		writeError(c, translate.Serialization(err))
		return
	}
	status, env := translate.Success(resp.StatusCode, user)
	c.JSON(status, env)
}

// handleListRoutes は路線一覧取得を処理するハンドラを返す。
func (s *Server) handleListRoutes() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.forward(c, adapter.ListRoutes(), &[]adapter.Route{})
	}
}

// handleGetRoute は路線取得を処理するハンドラを返す。
func (s *Server) handleGetRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		call, err := adapter.GetRoute(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, &adapter.Route{})
	}
}

// handleCreateRoute は路線作成を処理するハンドラを返す。
// 出発駅・到着駅が有効であることをStationsバックエンドで先に確認する。
// 2つの独立した呼び出しであり、原子性は保証しない。駅の確認が成功して
// いない限り、路線作成を成功として返すことはない。
func (s *Server) handleCreateRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p adapter.RoutePayload
		if !bindJSON(c, &p) {
			return
		}

		call, err := adapter.CreateRoute(p)
		if err != nil {
			writeError(c, err)
			return
		}

		for _, stationID := range []string{p.OriginStationID, p.DestinationStationID} {
			station, ok := s.fetchStation(c, stationID)
			if !ok {
				return
			}
			if !station.IsActive {
				writeError(c, &adapter.ValidationError{Msg: fmt.Sprintf("駅 %s は現在利用できません", stationID)})
				return
			}
		}

		s.forward(c, call, &adapter.Route{})
	}
}

// fetchStation はStationsバックエンドから駅を取得する。
// 取得に失敗した場合はエンベロープを書き出してfalseを返す。
func (s *Server) fetchStation(c *gin.Context, id string) (*adapter.Station, bool) {
	call, err := adapter.GetStation(id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}

	resp, ok := s.dispatch(c, call)
	if !ok {
		return nil, false
	}

	var station adapter.Station
	status, env := translate.FromBackend(resp, &station)
	if !env.Success {
		c.JSON(status, env)
		return nil, false
	}
	return &station, true
}

// handleUpdateRoute は路線更新を処理するハンドラを返す。
func (s *Server) handleUpdateRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p adapter.RoutePayload
		if !bindJSON(c, &p) {
			return
		}

		call, err := adapter.UpdateRoute(c.Param("id"), p)
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, &adapter.Route{})
	}
}

// handleDeleteRoute は路線削除を処理するハンドラを返す。
func (s *Server) handleDeleteRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		call, err := adapter.DeleteRoute(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, nil)
	}
}

// handleListTickets は切符一覧取得を処理するハンドラを返す。
// userId・date・stateの各フィルタは、設定されたものだけがバックエンドの
// 期待する名前でクエリに載る。応答の配列はフィールドを変換せずに返す。
func (s *Server) handleListTickets() gin.HandlerFunc {
	return func(c *gin.Context) {
		var f adapter.TicketFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			writeError(c, &adapter.ValidationError{Msg: "クエリパラメータを解釈できません"})
			return
		}

		call, err := adapter.ListTickets(f)
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, &[]adapter.Ticket{})
	}
}

// handleGetTicket は切符取得を処理するハンドラを返す。
func (s *Server) handleGetTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		call, err := adapter.GetTicket(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, &adapter.Ticket{})
	}
}

// handleCreateTicket は切符作成を処理するハンドラを返す。
// 価格・種別・状態・日付形式はローカルで検査して不正なら送信しない。
// (userId, issueDate)の一意性はバックエンドの権威であり、違反は
// バックエンドの409をそのまま透過する。
func (s *Server) handleCreateTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p adapter.TicketPayload
		if !bindJSON(c, &p) {
			return
		}

		call, err := adapter.CreateTicket(p)
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, &adapter.Ticket{})
	}
}

// handleUpdateTicket は切符更新を処理するハンドラを返す。
// Caducadoからの再有効化の拒否もバックエンドの応答をそのまま透過する。
func (s *Server) handleUpdateTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p adapter.TicketPayload
		if !bindJSON(c, &p) {
			return
		}

		call, err := adapter.UpdateTicket(c.Param("id"), p)
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, &adapter.Ticket{})
	}
}

// handleDeleteTicket は切符削除（バックエンド側の論理削除）を処理するハンドラを返す。
func (s *Server) handleDeleteTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		call, err := adapter.DeleteTicket(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		s.forward(c, call, nil)
	}
}
