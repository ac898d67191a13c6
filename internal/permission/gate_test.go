package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yonginsolar/erp/internal/domain"
	"github.com/yonginsolar/erp/internal/permission"
)

func TestGate_IsAuthorized(t *testing.T) {
	gate, err := permission.NewGate()
	assert.NoError(t, err)

	tests := []struct {
		name string
		user domain.UserContext
		want bool
	}{
		{"admin role", domain.UserContext{Role: "admin"}, true},
		{"admin role with ordinary position", domain.UserContext{Role: "admin", Position: "사원"}, true},
		{"position 국장", domain.UserContext{Role: "user", Position: "국장"}, true},
		{"position 이사", domain.UserContext{Role: "user", Position: "이사"}, true},
		{"position 이사장", domain.UserContext{Role: "user", Position: "이사장"}, true},
		{"elevated position without role", domain.UserContext{Position: "이사장"}, true},
		{"ordinary user", domain.UserContext{Role: "user", Position: "사원"}, false},
		{"role only, not admin", domain.UserContext{Role: "user"}, false},
		{"position only, not elevated", domain.UserContext{Position: "대리"}, false},
		{"anonymous", domain.Anonymous(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.IsAuthorized(tt.user))
		})
	}
}

func TestGate_FailClosedOnMalformedDescriptor(t *testing.T) {
	gate, err := permission.NewGate()
	assert.NoError(t, err)

	user := domain.ParseUserContext([]byte(`{not json`))
	assert.True(t, user.IsAnonymous())
	assert.False(t, gate.IsAuthorized(user))

	assert.False(t, gate.IsAuthorized(domain.ParseUserContext(nil)))
}
