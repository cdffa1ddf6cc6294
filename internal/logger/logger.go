package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создает zap.Logger для сервиса. Уровень и формат берутся из
// конфигурации, вывод всегда в stdout (сервис работает в контейнере,
// файловые логи не нужны).
func New(level, encoding string) (*zap.Logger, error) {
	atomicLevel := zap.NewAtomicLevel()
	lvl := strings.ToLower(level)
	if lvl == "" {
		lvl = "info" // Уровень по умолчанию
	}
	if err := atomicLevel.UnmarshalText([]byte(lvl)); err != nil {
		// Логгер еще не создан, поэтому пишем в stderr
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'. Error: %v\n", level, err)
		atomicLevel.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	enc := strings.ToLower(encoding)
	if enc != "console" && enc != "json" {
		enc = "json" // По умолчанию json
	}

	zapConfig := zap.Config{
		Level:             atomicLevel,
		Development:       false,
		DisableCaller:     true, // Информация о вызывающем не нужна
		DisableStacktrace: true,
		Encoding:          enc,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	l, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return l, nil
}
