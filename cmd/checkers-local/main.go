package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"checkers/internal/config"
	"checkers/internal/engine"
	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	configPath := flag.String("config", "checkers.json", "path to JSON config file (missing file = defaults)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	webDir := flag.String("web", "", "directory with index.html / js / svg (overrides config)")
	depth := flag.Int("depth", 0, "AI search depth (overrides config)")
	parallel := flag.Bool("parallel", false, "search root moves in parallel")
	noBrowser := flag.Bool("no-browser", false, "do not open the default browser")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *depth > 0 {
		cfg.AIDepth = *depth
	}
	if *parallel {
		cfg.AIParallel = true
	}
	if *noBrowser {
		cfg.OpenBrowser = false
	}
	// 命令行覆盖后的配置也要过一遍校验
	store := config.NewStore(config.DefaultConfig())
	if err := store.Update(cfg); err != nil {
		log.Fatalf("[main] %v", err)
	}
	cfg = store.Get()

	e := engine.NewEngine(cfg.Search())
	h := httpserver.NewHandler(e, game.Mode(cfg.DefaultMode))

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpserver.NewRouter(h, cfg.WebDir, cfg.MobileWebDir),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Printf("[main] listening on %s, serving static from %s, depth=%d parallel=%v",
		cfg.Addr, cfg.WebDir, e.Config().MaxDepth, e.Config().Parallel)

	// ⭐ 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
	if cfg.OpenBrowser {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Addr)
		}()
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	select {
	case <-sigCtx.Done():
		log.Printf("[main] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[main] server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[main] graceful shutdown failed: %v", err)
		_ = server.Close()
	}
}
