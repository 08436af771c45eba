package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/cancel"
	"github.com/moyu-x/dupsweep/pkg/logger"
)

// ErrCancelled 完整哈希在读取过程中被取消
var ErrCancelled = errors.New("hashing cancelled")

// Algorithm 完整哈希使用的摘要算法
type Algorithm string

const (
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
)

// ParseAlgorithm 解析配置中的算法名
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(name)) {
	case SHA256, "":
		return SHA256, nil
	case BLAKE2b, "blake2b-256":
		return BLAKE2b, nil
	default:
		return "", fmt.Errorf("不支持的哈希算法: %s", name)
	}
}

func (a Algorithm) newHash() hash.Hash {
	if a == BLAKE2b {
		// key 为空时不会返回错误
		h, _ := blake2b.New256(nil)
		return h
	}
	return sha256.New()
}

type Options struct {
	PartialSize int
	ChunkSize   int
	Algorithm   Algorithm
}

// Hasher 计算部分哈希（xxhash，仅用于预分组）和完整哈希（加密摘要，流式读取）
type Hasher struct {
	fs          afero.Fs
	partialSize int
	chunkSize   int
	algorithm   Algorithm
}

func New(fs afero.Fs, opts Options) *Hasher {
	if opts.PartialSize <= 0 {
		opts.PartialSize = internal.DefaultPartialHashSize
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = internal.DefaultChunkSize
	}
	if opts.Algorithm == "" {
		opts.Algorithm = SHA256
	}
	return &Hasher{
		fs:          fs,
		partialSize: opts.PartialSize,
		chunkSize:   opts.ChunkSize,
		algorithm:   opts.Algorithm,
	}
}

func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

// Partial 读取文件前 partialSize 字节（文件更小时读取全部）并计算摘要。
// 同时返回读到的前缀，供类型识别使用。
func (h *Hasher) Partial(path string) (uint64, []byte, error) {
	file, err := h.fs.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer file.Close()

	buf := make([]byte, h.partialSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, nil, err
	}
	buf = buf[:n]

	return xxhash.Sum64(buf), buf, nil
}

// Full 以固定大小的块流式计算整个文件的摘要，每块之前检查取消标志
func (h *Hasher) Full(path string, tok *cancel.Token) (string, error) {
	file, err := h.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	digest := h.algorithm.newHash()
	buf := make([]byte, h.chunkSize)
	for {
		if tok.Cancelled() {
			return "", ErrCancelled
		}

		n, err := file.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("读取文件失败: %s", path)
			return "", err
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
