package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Angh31/sistema-educativo-backend/config"
)

func corsRouter(cfg *config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestCORS_AllowedOrigin(t *testing.T) {
	r := corsRouter(&config.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173/"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       600,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	// 配置中的尾斜杠应被归一化
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("放行来源应回显 Origin, 实际: %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("白名单来源应下发凭据头")
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Errorf("请求头白名单应来自配置, 实际: %q", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("预检缓存时长应来自配置, 实际: %q", got)
	}
	if w.Header().Get("Vary") != "Origin" {
		t.Error("应设置 Vary: Origin")
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	r := corsRouter(&config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("白名单外的来源不应下发 CORS 头")
	}
	// 请求本身仍正常处理
	if w.Code != http.StatusOK {
		t.Errorf("非预检请求应正常返回, 实际: %d", w.Code)
	}
}

func TestCORS_WildcardWithoutCredentials(t *testing.T) {
	r := corsRouter(&config.CORSConfig{AllowOrigins: []string{"*"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://cualquiera.example")
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("通配配置应放行任意来源")
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Error("通配来源不应下发凭据头")
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r := corsRouter(&config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求应返回 204, 实际: %d", w.Code)
	}
}
