package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// registerStatic 挂两套前端：/web 桌面版，/web_mobile 手机版。
// 根路径按 ?view=web|mobile 跳转，没带参数就看 User-Agent。
func registerStatic(r chi.Router, desktopDir, mobileDir string) {
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}
	mount := func(prefix, dir string) {
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir))))
		r.Get(prefix, http.RedirectHandler(prefix+"/", http.StatusFound).ServeHTTP)
	}
	mount("/web", desktopDir)
	mount("/web_mobile", mobileDir)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		target := "/web/"
		if wantsMobile(r) {
			target = "/web_mobile/"
		}
		w.Header().Set("Vary", "User-Agent")
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func wantsMobile(r *http.Request) bool {
	switch r.URL.Query().Get("view") {
	case "mobile":
		return true
	case "web":
		return false
	}
	ua := strings.ToLower(r.UserAgent())
	for _, n := range []string{"android", "iphone", "ipad", "mobile"} {
		if strings.Contains(ua, n) {
			return true
		}
	}
	return false
}
