package qrgen

import (
	"github.com/Badsnus/qrgen/internal/adapters/config"
	"github.com/Badsnus/qrgen/internal/adapters/fetcher"
	"github.com/Badsnus/qrgen/internal/adapters/storage"
	"github.com/Badsnus/qrgen/internal/domain/service"
	"github.com/Badsnus/qrgen/pkg/logger"
	"github.com/Badsnus/qrgen/pkg/logger/types"
	"github.com/Badsnus/qrgen/pkg/qrcode"
)

type App struct {
	Config  *config.Config
	Logger  *types.Logger
	Service *service.QrService
}

// NewApp wires the adapters into the generation service. logger.Init must
// have been called before.
func NewApp(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}
	iconLogger, err := logger.Named("icons")
	if err != nil {
		return nil, err
	}
	serviceLogger, err := logger.Named("service")
	if err != nil {
		return nil, err
	}

	icons := qrcode.NewIconProvider(fetcher.New(cfg.Fetch), cfg.Render.FontPath, iconLogger)
	qrService := service.NewQrService(icons, storage.NewPNGWriter(), service.QrOptions{
		Render: qrcode.RenderOptions{
			Scale:  cfg.Render.Scale,
			Border: cfg.Render.Border,
		},
		CornerRadius:  cfg.Render.CornerRadius,
		BlendWeight:   cfg.Render.BlendWeight,
		MinContrast:   cfg.Render.MinContrast,
		LabelFontSize: cfg.Render.LabelFontSize,
		FontPath:      cfg.Render.FontPath,
	}, serviceLogger)

	appLogger.Debugw("app initialized",
		"scale", cfg.Render.Scale,
		"border", cfg.Render.Border,
		"fetch_timeout", cfg.Fetch.Timeout.String(),
	)

	return &App{
		Config:  cfg,
		Logger:  appLogger,
		Service: qrService,
	}, nil
}
