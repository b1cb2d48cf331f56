package models

// 用户角色
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID      int     `json:"id"`
	Role    string  `json:"role"`
	Address Address `json:"address"`
}

// Actor 认证中间件注入的请求身份。
type Actor struct {
	ID   int
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
