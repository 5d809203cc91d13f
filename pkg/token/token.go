// Package token 生成邀请令牌等不透明随机字符串。
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// DefaultBytes 默认随机字节数（256 bit，hex 后 64 字符）
const DefaultBytes = 32

// Generator 令牌生成器；Reader 为空时使用 crypto/rand
type Generator struct {
	Bytes  int
	Reader io.Reader
}

// New 按字节数创建生成器
func New(bytes int) *Generator {
	if bytes <= 0 {
		bytes = DefaultBytes
	}
	return &Generator{Bytes: bytes}
}

// Generate 生成 hex 编码的随机令牌
func (g *Generator) Generate() (string, error) {
	n := g.Bytes
	if n <= 0 {
		n = DefaultBytes
	}
	r := g.Reader
	if r == nil {
		r = rand.Reader
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
