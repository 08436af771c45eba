package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var Logger *zerolog.Logger

// ParseLevel 解析日志级别，无法识别时返回 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var (
	stderr io.Writer = os.Stderr

	mu       sync.Mutex
	console  io.Writer
	fileSink io.Writer
	minLevel zerolog.Level
)

// Init 初始化 zerolog 日志
// level: 日志级别 ("debug", "info", "warn", "error")
// file: 日志文件路径，为空时仅输出到控制台
//
// 控制台输出写到 stderr，stdout 留给扫描结果（例如 --json）。
func Init(level string, file string) error {
	mu.Lock()
	defer mu.Unlock()

	console = zerolog.ConsoleWriter{Out: stderr, TimeFormat: "2006-01-02 15:04:05"}
	fileSink = nil
	minLevel = ParseLevel(level)

	if file != "" {
		// 文件中保留结构化 JSON，控制台保持可读格式
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		fileSink = fileWriter
	}

	build(true)
	return nil
}

// MuteConsole 暂停控制台输出，只写日志文件（未配置文件时丢弃）。
// 全屏界面运行期间使用，返回的函数恢复控制台输出。
func MuteConsole() (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	if Logger == nil {
		return func() {}
	}
	build(false)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		build(true)
	}
}

func build(withConsole bool) {
	var writers []io.Writer
	if withConsole && console != nil {
		writers = append(writers, console)
	}
	if fileSink != nil {
		writers = append(writers, fileSink)
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		output = io.Discard
	case 1:
		output = writers[0]
	default:
		output = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(minLevel)
	Logger = &logger
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}
