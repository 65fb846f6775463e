package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"surgery-reservation-system/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		roleID     int
		wantStatus int
	}{
		{"admin passes admin gate", RequireAdmin, entity.RoleIDAdmin, http.StatusOK},
		{"doctor blocked by admin gate", RequireAdmin, entity.RoleIDDoctor, http.StatusForbidden},
		{"doctor passes scheduling gate", RequireAdminOrDoctor, entity.RoleIDDoctor, http.StatusOK},
		{"admin passes scheduling gate", RequireAdminOrDoctor, entity.RoleIDAdmin, http.StatusOK},
		{"patient blocked by scheduling gate", RequireAdminOrDoctor, entity.RoleIDPatient, http.StatusForbidden},
		{"nurse passes team gate", RequireSurgicalTeam, entity.RoleIDNurse, http.StatusOK},
		{"anesthesiologist passes team gate", RequireSurgicalTeam, entity.RoleIDAnesthesiologist, http.StatusOK},
		{"doctor blocked by team gate", RequireSurgicalTeam, entity.RoleIDDoctor, http.StatusForbidden},
		{"patient passes patient gate", RequirePatient, entity.RoleIDPatient, http.StatusOK},
		{"admin blocked by patient gate", RequirePatient, entity.RoleIDAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.middleware(okHandler).ServeHTTP(rec, requestWithRole(tt.roleID))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleWithoutContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without role context")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
