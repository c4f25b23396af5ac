// mazegate 启动迷宫合约 HTTP 网关
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd, _ := newRootCommand(os.LookupEnv)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
