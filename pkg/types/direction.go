package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Direction 波次方向
//
// 方向与出生侧一一对应：DirectionRight 表示从视口右侧外出生、向中心行进，
// DirectionLeft 表示从视口左侧外出生。
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
)

// String 返回方向的字符串表示
func (d Direction) String() string {
	if d == DirectionRight {
		return "right"
	}
	return "left"
}

// SpawnSide 配置的出生侧
type SpawnSide int

const (
	// SpawnBoth 每波随机选择左或右
	SpawnBoth SpawnSide = iota
	SpawnLeft
	SpawnRight
)

// String 返回出生侧的配置字符串表示
func (s SpawnSide) String() string {
	switch s {
	case SpawnLeft:
		return "left"
	case SpawnRight:
		return "right"
	default:
		return "both"
	}
}

// ParseSpawnSide 解析配置字符串（大小写不敏感）
func ParseSpawnSide(s string) (SpawnSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return SpawnLeft, nil
	case "right":
		return SpawnRight, nil
	case "both", "":
		return SpawnBoth, nil
	default:
		return SpawnBoth, fmt.Errorf("unknown spawn side %q (want left, right or both)", s)
	}
}

// Next 按 both → left → right → both 的顺序循环（桌面端快捷键使用）
func (s SpawnSide) Next() SpawnSide {
	switch s {
	case SpawnBoth:
		return SpawnLeft
	case SpawnLeft:
		return SpawnRight
	default:
		return SpawnBoth
	}
}

// MarshalYAML 实现 yaml.Marshaler
func (s SpawnSide) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (s *SpawnSide) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	side, err := ParseSpawnSide(raw)
	if err != nil {
		return err
	}
	*s = side
	return nil
}
