package adapter

import (
	"net/http"
	"net/url"

	"github.com/railhub/gateway/internal/registry"
	"github.com/railhub/gateway/pkg/httpclient"
)

// 切符種別の列挙値。Ticketsバックエンドの定義を送信前検査のために写している。
const (
	// TicketTypeIda は片道切符。
	TicketTypeIda = "Ida"
	// TicketTypeVuelta は復路切符。
	TicketTypeVuelta = "Vuelta"
)

// 切符状態の列挙値。Caducado→Activoの遷移禁止や(userId, issueDate)の
// 一意性はバックエンドが唯一の権威であり、ここでは検査しない。
const (
	// TicketStateActivo は有効な切符。
	TicketStateActivo = "Activo"
	// TicketStateUsado は使用済みの切符。
	TicketStateUsado = "Usado"
	// TicketStateCaducado は失効した切符。
	TicketStateCaducado = "Caducado"
)

// TicketFilter は切符一覧の絞り込み条件。各フィールドは省略可能で、
// 設定されたフィールドだけがクエリパラメータ1つを生成する。
type TicketFilter struct {
	// UserID は利用者IDによる絞り込み。
	UserID string `form:"userId"`
	// Date は発行日（yyyy-MM-dd）による絞り込み。
	Date string `form:"date" validate:"omitempty,fecha"`
	// State は状態による絞り込み。
	State string `form:"state" validate:"omitempty,oneof=Activo Usado Caducado"`
}

// TicketPayload は切符の作成・更新でゲートウェイが受け取るボディ。
type TicketPayload struct {
	// UserID は切符の所有者ID。
	UserID string `json:"userId" validate:"required"`
	// IssueDate は発行日（yyyy-MM-dd）。
	IssueDate string `json:"issueDate" validate:"required,fecha"`
	// Price は価格。正の値のみ許可する。
	Price float64 `json:"price" validate:"gt=0"`
	// Type は切符種別（Ida | Vuelta）。
	Type string `json:"type" validate:"required,oneof=Ida Vuelta"`
	// State は切符状態（Activo | Usado | Caducado）。
	State string `json:"state" validate:"required,oneof=Activo Usado Caducado"`
}

// ticketBody はTicketsバックエンドが期待するsnake_caseのボディ。
type ticketBody struct {
	UserID    string  `json:"user_id"`
	IssueDate string  `json:"issue_date"`
	Price     float64 `json:"price"`
	Type      string  `json:"type"`
	State     string  `json:"state"`
}

// Ticket はTicketsバックエンドが返す切符表現。
// フィールド名はバックエンドの規約のまま、変換せずにクライアントへ返す。
type Ticket struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	IssueDate string  `json:"issue_date"`
	Price     float64 `json:"price"`
	Type      string  `json:"type"`
	State     string  `json:"state"`
	Deleted   bool    `json:"deleted"`
}

// ListTickets は切符一覧取得の送信内容を組み立てる。
// フィルタの設定済みフィールドだけをバックエンドの期待する名前で
// クエリに載せる。未設定フィールドは空文字パラメータすら生成しない。
func ListTickets(f TicketFilter) (Call, error) {
	if err := checkStruct(f); err != nil {
		return Call{}, err
	}

	query := url.Values{}
	if f.UserID != "" {
		query.Set("userId", f.UserID)
	}
	if f.Date != "" {
		query.Set("date", f.Date)
	}
	if f.State != "" {
		query.Set("state", f.State)
	}

	return Call{
		Service: registry.ServiceTickets,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/GetAllTickets",
			Query:  query,
		},
	}, nil
}

// GetTicket は切符1件取得の送信内容を組み立てる。
func GetTicket(id string) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceTickets,
		Request: httpclient.Request{
			Method: http.MethodGet,
			Path:   "/GetTicket/" + url.PathEscape(id),
		},
	}, nil
}

// CreateTicket は切符作成の送信内容を組み立てる。
// Ticketsバックエンドの作成エンドポイントはコレクションルートではなく
// /AddTicket という専用パスを使う。
func CreateTicket(p TicketPayload) (Call, error) {
	if err := checkStruct(p); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceTickets,
		Request: httpclient.Request{
			Method: http.MethodPost,
			Path:   "/AddTicket",
			Body:   toTicketBody(p),
		},
	}, nil
}

// UpdateTicket は切符更新の送信内容を組み立てる。
func UpdateTicket(id string, p TicketPayload) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	if err := checkStruct(p); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceTickets,
		Request: httpclient.Request{
			Method: http.MethodPut,
			Path:   "/UpdateTicket/" + url.PathEscape(id),
			Body:   toTicketBody(p),
		},
	}, nil
}

// DeleteTicket は切符削除の送信内容を組み立てる。
// 実体はバックエンド側の論理削除であり、ゲートウェイは関知しない。
func DeleteTicket(id string) (Call, error) {
	if err := requireID("id", id); err != nil {
		return Call{}, err
	}
	return Call{
		Service: registry.ServiceTickets,
		Request: httpclient.Request{
			Method: http.MethodDelete,
			Path:   "/DeleteTicket/" + url.PathEscape(id),
		},
	}, nil
}

// toTicketBody はゲートウェイのフィールド名をバックエンドのsnake_caseへ写す。
func toTicketBody(p TicketPayload) ticketBody {
	return ticketBody{
		UserID:    p.UserID,
		IssueDate: p.IssueDate,
		Price:     p.Price,
		Type:      p.Type,
		State:     p.State,
	}
}
