package search

import "sync/atomic"

// Sequencer 为每次搜索请求分配单调递增的序号
// 只有序号等于最新值的扫描结果才会被应用，过期结果直接丢弃。
type Sequencer struct {
	latest atomic.Uint64
}

// Next 发出一个新的请求序号，之前发出的序号全部过期
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Latest 返回最新发出的序号
func (s *Sequencer) Latest() uint64 {
	return s.latest.Load()
}

// IsLatest 判断 seq 是否仍是最新请求
func (s *Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && seq == s.latest.Load()
}
