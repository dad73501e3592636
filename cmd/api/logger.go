// Package main
package main

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kardiachain/cryptoverse-backend/cfg"
)

func newLogger(sCfg cfg.DashboardConfig) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	switch sCfg.ServerMode {
	case cfg.ModeDev:
		logCfg = zap.NewDevelopmentConfig()
		logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case cfg.ModeProduction:
		logCfg = zap.NewProductionConfig()
	}

	switch sCfg.LogLevel {
	case "info":
		logCfg.Level.SetLevel(zapcore.InfoLevel)
	case "debug":
		logCfg.Level.SetLevel(zapcore.DebugLevel)
	case "warn":
		logCfg.Level.SetLevel(zapcore.WarnLevel)
	case "error":
		logCfg.Level.SetLevel(zapcore.ErrorLevel)
	default:
		logCfg.Level.SetLevel(zapcore.InfoLevel)
	}

	var opts []zap.Option
	if sCfg.LogFile != "" {
		// Rotated JSON copy of every entry, next to the console output.
		fileEncoder := zap.NewProductionEncoderConfig()
		fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoder),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   sCfg.LogFile,
				MaxSize:    100,
				MaxAge:     7,
				MaxBackups: 5,
				Compress:   true,
			}),
			logCfg.Level,
		)
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}
	if sCfg.SentryDSN != "" {
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.RegisterHooks(core, func(entry zapcore.Entry) error {
				if entry.Level < zap.WarnLevel {
					return nil
				}
				e := sentry.NewEvent()
				e.Message = entry.Message
				e.Logger = entry.LoggerName
				switch entry.Level {
				case zap.WarnLevel:
					e.Level = sentry.LevelWarning
				case zap.ErrorLevel:
					e.Level = sentry.LevelError
				default:
					e.Level = sentry.LevelFatal
				}
				sentry.CaptureEvent(e)
				return nil
			})
		}))
	}

	return logCfg.Build(opts...)
}
