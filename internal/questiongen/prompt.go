package questiongen

import (
	"fmt"
	"sort"
	"strings"
)

// buildQuestionPrompt describes everything already collected and asks the
// model for the single most valuable next question, as bare JSON.
func buildQuestionPrompt(collected map[string]string, questionsAsked, maxQuestions int) string {
	var b strings.Builder

	b.WriteString("你是一位经验丰富的教学设计助手，正在通过对话帮助教师准备一堂课。\n")
	b.WriteString("你需要根据已经收集到的信息，提出下一个最有价值的问题，以便补全备课所需的关键信息。\n\n")

	if len(collected) == 0 {
		b.WriteString("目前还没有收集到任何信息。\n")
	} else {
		b.WriteString("已收集的信息：\n")
		keys := make([]string, 0, len(collected))
		for k := range collected {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, collected[k])
		}
	}

	fmt.Fprintf(&b, "\n已提问 %d 个问题，最多还能提问 %d 个。\n", questionsAsked, maxQuestions-questionsAsked)
	b.WriteString("优先补全尚未明确的关键信息：学科、年级、课程主题、课时长度、教学方法、学生水平、学习目标。\n\n")

	b.WriteString("请严格按照以下 JSON 格式返回下一个问题，不要包含任何其他文字或代码块标记：\n")
	b.WriteString(`{
  "question": "问题文本（中文）",
  "question_type": "single_choice 或 open_ended",
  "key_to_save": "用于保存答案的英文键名，如 teaching_method",
  "options": ["选项1", "选项2", "选项3", "选项4"],
  "allows_free_text": true,
  "priority": "high、medium 或 low",
  "reasoning": "为什么现在问这个问题"
}`)
	b.WriteString("\noptions 必须包含 4 到 6 个选项。\n")

	return b.String()
}
