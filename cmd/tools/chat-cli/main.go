// cmd/tools/chat-cli/main.go
//
// Interactive terminal client against the assistant core. Useful for
// exercising the session state machine without the HTTP surface.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"realty-assistant/internal/assistant"
	"realty-assistant/internal/catalog"
	"realty-assistant/internal/common/config"
	"realty-assistant/internal/common/logger"
	"realty-assistant/internal/identity"
	"realty-assistant/internal/mapview"
	"realty-assistant/internal/session"

	"github.com/google/uuid"
)

func main() {
	mock := flag.Bool("mock", false, "serve turns from the built-in catalog")
	flag.Parse()

	zapLog := logger.New("warn", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	var retriever assistant.Retriever
	if *mock || cfg.Assistant.Mock {
		retriever = catalog.NewMockRetriever()
	} else {
		retriever = assistant.NewClient(cfg.Assistant.BaseURL, config.GetDuration(cfg.Assistant.Timeout), log)
	}

	ctrl := session.NewController(uuid.NewString(), session.Deps{
		Retriever:     retriever,
		IdentityStore: identity.NewFileStore(cfg.Identity.FilePath),
		IdentityKey:   cfg.Identity.Key,
		Logger:        log,
	})

	fmt.Println("Hãy hỏi tôi bất cứ điều gì về bất động sản. (Ctrl-D để thoát)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		before := len(ctrl.Messages())
		if err := ctrl.SubmitText(context.Background(), scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		for _, msg := range ctrl.Messages()[before:] {
			if msg.Role == "assistant" {
				fmt.Println(msg.Text())
			}
		}

		mv := ctrl.MapView()
		if mv.IsVisible() {
			bounds := mv.Bounds()
			fmt.Printf("[bản đồ] %d bất động sản, trung tâm (%.3f, %.3f), zoom %d\n",
				len(mv.Properties()), bounds.CenterLat, bounds.CenterLng, bounds.Zoom)
			for _, p := range mv.Properties() {
				fmt.Printf("  - %s (%s), %s [%s]\n", p.Name, p.TypeDisplay, p.Location, mapview.MarkerColor(p.Type))
			}
		}
	}
}
