package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestQueryID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query   string
		id      uint
		present bool
		wantErr bool
	}{
		{"", 0, false, false},
		{"?problem_id=", 0, false, false},
		{"?problem_id=7", 7, true, false},
		{"?problem_id=0", 0, true, true},
		{"?problem_id=-3", 0, true, true},
		{"?problem_id=abc", 0, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/algorithms"+tt.query, nil)

			id, present, err := QueryID(c, "problem_id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.id || present != tt.present {
				t.Fatalf("got (%d, %v), want (%d, %v)", id, present, tt.id, tt.present)
			}
		})
	}
}
