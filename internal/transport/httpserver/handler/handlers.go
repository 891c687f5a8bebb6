package handler

import (
	assetsdomain "finance-app-go/internal/domain/assets"
	chatdomain "finance-app-go/internal/domain/chat"
	expensesdomain "finance-app-go/internal/domain/expenses"
	familydomain "finance-app-go/internal/domain/family"
	portfoliodomain "finance-app-go/internal/domain/portfolio"
	"finance-app-go/pkg/logger"
)

type Handlers struct {
	Assets    *assetsdomain.Service
	Expenses  *expensesdomain.Service
	Family    *familydomain.Service
	Chat      *chatdomain.Service
	Portfolio *portfoliodomain.Service
	auth      *AuthProxy
	log       logger.Logger
}

func New(assets *assetsdomain.Service, expenses *expensesdomain.Service, family *familydomain.Service, chat *chatdomain.Service, portfolio *portfoliodomain.Service, auth *AuthProxy, log logger.Logger) *Handlers {
	return &Handlers{
		Assets:    assets,
		Expenses:  expenses,
		Family:    family,
		Chat:      chat,
		Portfolio: portfolio,
		auth:      auth,
		log:       log,
	}
}
