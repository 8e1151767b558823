package components

// ScaleComponent 存储实体级别的缩放因子
// 1.0 = 原始大小；精英单位为默认缩放的 1.2 倍，载具使用单独配置的缩放
type ScaleComponent struct {
	Scale float64
}
