package cache

import "fmt"

func FileStatusKey(fileID string) string {
	return fmt.Sprintf("file:status:%s", fileID)
}
