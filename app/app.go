package app

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupsweep/config"
	"github.com/moyu-x/dupsweep/pkg/hasher"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/scanner"
	"github.com/moyu-x/dupsweep/pkg/trash"
)

// Env 各个命令共享的配置和扫描组件
type Env struct {
	Cfg     *config.Config
	Fs      afero.Fs
	Walker  *scanner.FileWalker
	Trasher trash.Trasher
}

// Setup 加载配置、初始化日志并构建真实文件系统上的组件
func Setup(cfgFile string, verbose bool) (*Env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	logger.Get().Debug().Msg("加载配置完成")

	var trasher trash.Trasher
	if bin, err := trash.DefaultBin(); err != nil {
		logger.Get().Warn().Err(err).Msg("无法定位回收站，移入回收站功能不可用")
	} else {
		trasher = bin
	}

	return NewEnv(cfg, afero.NewOsFs(), trasher), nil
}

func NewEnv(cfg *config.Config, fs afero.Fs, trasher trash.Trasher) *Env {
	walker := scanner.NewFileWalker(fs, scanner.Policy{
		Exclude:          cfg.Scanner.Exclude,
		BundleExtensions: cfg.Scanner.BundleExtensions,
	})
	return &Env{Cfg: cfg, Fs: fs, Walker: walker, Trasher: trasher}
}

// Roots 命令行参数优先，否则使用配置中的 scanner.roots
func (e *Env) Roots(args []string) ([]string, error) {
	roots := args
	if len(roots) == 0 {
		roots = e.Cfg.Scanner.Roots
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("没有指定要扫描的目录，请通过参数或配置项 scanner.roots 指定")
	}

	logger.Get().Info().Msgf("扫描目录数: %d", len(roots))
	for i, dir := range roots {
		logger.Get().Info().Msgf("  [%d] %s", i+1, dir)
	}
	return roots, nil
}

func (e *Env) newHasher(algorithm string) (*hasher.Hasher, error) {
	if algorithm == "" {
		algorithm = e.Cfg.Hasher.Algorithm
	}
	alg, err := hasher.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	return hasher.New(e.Fs, hasher.Options{
		PartialSize: e.Cfg.Hasher.PartialSize,
		ChunkSize:   e.Cfg.Hasher.ChunkSize,
		Algorithm:   alg,
	}), nil
}
