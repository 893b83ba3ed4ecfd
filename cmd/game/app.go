package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"textquest/cmd/game/ui"
	"textquest/internal/combat"
	"textquest/internal/config"
	"textquest/internal/crafting"
	"textquest/internal/debug"
	"textquest/internal/dice"
	"textquest/internal/game"
	"textquest/internal/logging"
	"textquest/internal/narration"
	"textquest/internal/observability"
	"textquest/internal/save"
	"textquest/internal/trading"
)

func createApp(playerName string) (ui.Model, func(), error) {
	cfg := config.Load()
	sessionID := uuid.New().String()

	debugLogger := debug.NewLogger(cfg.Debug, cfg.DebugLogPath)
	debugLogger.Printf("Starting session %s for %s", sessionID, playerName)

	ctx := context.Background()
	tracingConfig := observability.LoadConfigFromEnv()
	tracerProvider, err := observability.InitTracing(ctx, tracingConfig)
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}

	eventLogger, err := logging.NewEventLogger(cfg.EventDBPath, sessionID)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to initialize event logger: %w", err)
	}

	var service *narration.Service
	if cfg.OpenAIAPIKey != "" {
		service = narration.NewService(cfg.OpenAIAPIKey, cfg.NarrationModel, debugLogger)
		debugLogger.Printf("Narration enabled with model %s", cfg.NarrationModel)
	} else {
		debugLogger.Println("OPENAI_API_KEY not set; narration will use fallback text")
	}
	narrator := narration.NewNarrator(service, cfg.NarrationTimeout, debugLogger)

	codec, err := save.NewCodec(cfg.SaveDir, time.Now)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to open save directory: %w", err)
	}

	roll := dice.New(time.Now().UnixNano())
	session := &ui.Session{
		State:     game.NewGameState(playerName),
		Combat:    combat.NewResolver(roll),
		Crafting:  crafting.NewResolver(roll),
		Trading:   trading.NewResolver(roll, time.Now),
		Saves:     codec,
		Narrator:  narrator,
		Events:    eventLogger,
		Debug:     debugLogger,
		SessionID: sessionID,
	}

	model := ui.NewModel(session)

	cleanup := func() {
		if err := eventLogger.Close(); err != nil {
			debugLogger.Printf("closing event logger: %v", err)
		}
		if tracerProvider != nil {
			tracerProvider.Shutdown(context.Background())
		}
	}

	return model, cleanup, nil
}

func playerNameFromArgs() string {
	if len(os.Args) > 1 && os.Args[1] != "" {
		return os.Args[1]
	}
	return "Adventurer"
}
