package config

import (
	"os"
	"path/filepath"
)

// Load 读取 yml 配置并反序列化到 out。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 cfgName（例如 `configs/conf.yml`）。
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName == "" {
		panic("config file name is empty")
	}
	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}

	direct := filepath.Join(curDir, cfgName)
	if fileExist(direct) {
		load(direct, out)
		return
	}

	load(findConfigUpward(curDir, cfgName), out)
}

func findConfigUpward(startDir, cfgName string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, cfgName)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + cfgName + " from: " + startDir)
		}
		dir = parent
	}
}
