package tui

import "github.com/moyu-x/dupsweep/pkg/progress"

type progressMsg progress.Update

// updatesClosedMsg 进度通道已关闭
type updatesClosedMsg struct{}

type doneMsg struct {
	result Result
	err    error
}
