package permission

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/domain"
)

// AdminRole and ElevatedPositions are the full authorization table for the
// changelog feed. The set is fixed, not tenant data, so policies live in code
// instead of the database.
const AdminRole = "admin"

var ElevatedPositions = []string{"국장", "이사", "이사장"}

const gateModel = `
[request_definition]
r = role, pos

[policy_definition]
p = role, pos

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (p.role != "" && r.role == p.role) || (p.pos != "" && r.pos == p.pos)
`

//go:generate mockgen -source=gate.go -destination=mock/gate_mock.go -package=mock
type Gate interface {
	IsAuthorized(user domain.UserContext) bool
}

type gate struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewGate(logger ...*zap.Logger) (Gate, error) {
	l := zap.L().Named("permission.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.gate")
	}

	m, err := model.NewModelFromString(gateModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := enforcer.AddPolicy(AdminRole, ""); err != nil {
		return nil, err
	}
	for _, pos := range ElevatedPositions {
		if _, err := enforcer.AddPolicy("", pos); err != nil {
			return nil, err
		}
	}

	return &gate{enforcer: enforcer, logger: l}, nil
}

// IsAuthorized reports whether the descriptor may write to the feed.
// Anonymous descriptors and enforcer failures resolve to false.
func (g *gate) IsAuthorized(user domain.UserContext) bool {
	if user.IsAnonymous() {
		return false
	}

	allowed, err := g.enforcer.Enforce(user.Role, user.Position)
	if err != nil {
		g.logger.Error("enforce failed, denying",
			zap.String("role", user.Role),
			zap.String("position", user.Position),
			zap.Error(err),
		)
		return false
	}

	return allowed
}
