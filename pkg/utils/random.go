package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源
//
// 波次生成的所有随机性都来自此接口，测试可以注入可控的实现。
type RandomSource interface {
	// Float64 返回 [0.0, 1.0) 范围内的随机数
	Float64() float64
	// Intn 返回 [0, n) 范围内的随机整数
	Intn(n int) int
}

// PRNG 基于 math/rand 的随机数来源
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG 使用指定种子创建随机数来源
// 种子为 0 时使用当前时间
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Float64 返回 [0.0, 1.0) 范围内的随机数
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// Intn 返回 [0, n) 范围内的随机整数
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// RandRange 返回 [lo, hi) 范围内的均匀随机数
// lo > hi 时同样按线性插值计算，不做交换
func RandRange(r RandomSource, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// WeightedEntry 带权重的候选项
type WeightedEntry[T any] struct {
	Value  T
	Weight float64
}

// ChooseWeighted 按累积权重选择候选项
//
// roll 为 [0, 1) 的随机值；按顺序累加权重，返回第一个满足
// roll < 累积权重 且 eligible(Value) 为真的候选项。
// 不满足条件的候选项被跳过（其概率区间由后续候选项承接）。
// 没有候选项命中时返回 fallback。
func ChooseWeighted[T any](entries []WeightedEntry[T], roll float64, eligible func(T) bool, fallback T) T {
	cumulative := 0.0
	for _, entry := range entries {
		cumulative += entry.Weight
		if roll < cumulative && (eligible == nil || eligible(entry.Value)) {
			return entry.Value
		}
	}
	return fallback
}
