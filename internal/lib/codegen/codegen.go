// Package codegen генерирует случайные коды из фиксированного алфавита.
//
// Используется и для кодов карт доступа, и для установочных токенов
// контроллеров. Источник случайности — crypto/rand: коды должны оставаться
// непредсказуемыми и устойчивыми к коллизиям при массовой генерации.
package codegen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet — алфавит без визуально похожих символов (0/O, 1/I).
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InstallTokenLength — длина установочного токена контроллера.
const InstallTokenLength = 10

// Generate возвращает строку длиной length из равномерно выбранных
// символов alphabet.
func Generate(alphabet string, length int) (string, error) {
	const op = "codegen.Generate"
	if alphabet == "" {
		return "", fmt.Errorf("%s: empty alphabet", op)
	}
	if length <= 0 {
		return "", fmt.Errorf("%s: non-positive length %d", op, length)
	}

	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
