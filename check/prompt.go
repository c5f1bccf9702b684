package check

import (
	"os"

	"github.com/dailystory/storycheck/sys"
)

const PromptBasename = "test_prompt.txt"

const promptTemplate = `
请生成一个100字左右的爽文小故事片段：

要求：
- 主角：林风
- 背景：现代都市
- 情节：普通人获得系统后的打脸片段
- 风格：热血爽快

示例：
林风本是个普通的上班族，今天却意外获得了【神豪系统】。
【叮！检测到宿主被嘲讽，激活打脸模式！】
看着面前趾高气昂的经理，林风淡淡一笑："这个公司，我买了。"
`

// WritePrompt (over)writes the sample story prompt into dir
// and returns the written file path
func WritePrompt(dir string) (string, error) {
	path := sys.Within(dir, PromptBasename)
	if err := os.WriteFile(path, []byte(promptTemplate), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
