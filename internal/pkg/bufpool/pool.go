package bufpool

import "sync"

const chunkSize = 64 * 1024

var chunkPool = sync.Pool{
	New: func() any {
		val := make([]byte, chunkSize)
		return &val
	},
}

func GetChunk() *[]byte {
	return chunkPool.Get().(*[]byte)
}

func PutChunk(b *[]byte) {
	chunkPool.Put(b)
}
