package plangen

import (
	"fmt"
	"strings"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/search"
)

const maxGroundingResults = 3
const maxGroundingChars = 200

// PromptInput carries the fields the prompt is built from.
type PromptInput struct {
	Subject         string
	Grade           string
	Topic           string
	DurationMinutes int
	Collected       map[string]string
	SearchResults   []search.Result
}

const lessonSystemPrompt = `你是一位经验丰富的教学设计师，擅长为中小学教师编写结构化、可落地的教学方案。`

// buildLessonUserMessage composes the generation prompt: optional search
// grounding first, then the course facts, then the strict JSON contract.
func buildLessonUserMessage(in PromptInput) string {
	var b strings.Builder

	if len(in.SearchResults) > 0 {
		b.WriteString("# 参考资料（来自网络搜索，仅供参考）\n")
		for i, r := range in.SearchResults {
			if i >= maxGroundingResults {
				break
			}
			content := r.Content
			if runes := []rune(content); len(runes) > maxGroundingChars {
				content = string(runes[:maxGroundingChars]) + "..."
			}
			b.WriteString(fmt.Sprintf("%d. %s\n%s\n", i+1, r.Title, content))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("请为一堂%d分钟的%s%s课程设计一个完整的教学方案。\n\n", in.DurationMinutes, in.Grade, in.Subject))
	b.WriteString("# 课程基本信息\n")
	b.WriteString(fmt.Sprintf("- 学科: %s\n", in.Subject))
	b.WriteString(fmt.Sprintf("- 年级: %s\n", in.Grade))
	b.WriteString(fmt.Sprintf("- 课题: %s\n", in.Topic))

	if extra := formatExtraAnswers(in.Collected); extra != "" {
		b.WriteString("\n# 教师补充的需求\n")
		b.WriteString(extra)
	}

	b.WriteString(`
# 任务要求
请生成一个结构化的教学计划，必须严格遵循以下的 JSON 格式，不要在 JSON 之外添加任何解释性文字。

{
  "title": "（请为这堂课生成一个生动有趣的标题）",
  "learning_objectives": [
    "（请生成3-4条具体的学习目标）"
  ],
  "teaching_outline": "（请在这里生成一段100-200字的教学大纲或课程简介）",
  "activities": [
    {
      "order": 1,
      "name": "（活动名称，例如：课堂导入）",
      "description": "（对活动的详细描述，包括具体做什么）",
      "duration": 5
    }
  ]
}

各活动的 duration 之和应等于课程总时长，order 从 1 开始连续递增。`)

	return b.String()
}

// formatExtraAnswers lists every collected answer that is not one of the
// four primary fields, so dynamic-interview detail reaches the model.
func formatExtraAnswers(collected map[string]string) string {
	primary := map[string]bool{
		"subject": true, "grade": true, "topic": true, "duration_minutes": true,
	}

	var b strings.Builder
	for _, key := range sortedKeys(collected) {
		if primary[key] || collected[key] == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", key, collected[key]))
	}
	return b.String()
}
