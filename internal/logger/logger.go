package logger

import (
	"os"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func New(conf *config.Config) *zap.Logger {
	var (
		encoder = getConsoleEncoder()
		level   = getLevel(conf.Log.Level)
		cores   = []zapcore.Core{
			zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
		}
	)

	if conf.Log.File != "" {
		cores = append(cores, zapcore.NewCore(
			getJSONEncoder(),
			zapcore.AddSync(getLumberjackLogger(conf)),
			level,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func getLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

func getLumberjackLogger(conf *config.Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   conf.Log.File,
		MaxSize:    conf.Log.MaxSize,
		MaxBackups: conf.Log.MaxBackups,
		MaxAge:     conf.Log.MaxAge,
		Compress:   conf.Log.Compress,
	}
}

func getConsoleEncoder() zapcore.Encoder {
	conf := zap.NewProductionEncoderConfig()
	conf.TimeKey = "time"
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(conf)
}

func getJSONEncoder() zapcore.Encoder {
	conf := zap.NewProductionEncoderConfig()
	conf.TimeKey = "time"
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(conf)
}
