//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把预设文件复制到此目录：
//
//	cp data/smoke_presets.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/smoke_presets.yaml
var dataFS embed.FS
