package util

import (
	"strconv"
	"sync"

	snowflake "github.com/yockii/snowflake_ext"
)

var (
	idGenerator *snowflake.Worker
	idMu        sync.Mutex
)

// InitNode 初始化ID生成器
func InitNode(nodeID uint64) error {
	worker, err := snowflake.NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	idMu.Lock()
	idGenerator = worker
	idMu.Unlock()
	return nil
}

// NewID 生成新的ID，未初始化时按节点1懒加载
func NewID() uint64 {
	idMu.Lock()
	if idGenerator == nil {
		if worker, err := snowflake.NewSnowflake(1); err == nil {
			idGenerator = worker
		}
	}
	worker := idGenerator
	idMu.Unlock()
	if worker == nil {
		return 0
	}
	return worker.NextId()
}

// NewIDString 生成字符串形式的ID
func NewIDString() string {
	return strconv.FormatUint(NewID(), 10)
}
