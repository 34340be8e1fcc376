package analysis

import (
	"fmt"
	"strings"

	"github.com/tikscope/tikscope/internal/profile"
	"github.com/tikscope/tikscope/internal/recommend"
)

// Report templates per language. HTML parse mode, so dynamic values go
// through the formatters below, never raw.
const reportTemplateAr = `✅ <b>تحليل حساب TikTok</b>

👤 المستخدم: @%s
📊 المتابعون: %d
➡️ يتابع: %d
🎬 عدد الفيديوهات: %d
❤️ إجمالي الإعجابات: %d
📈 معدل التفاعل: %s%%

💡 <b>أوقات النشر المقترحة (%s):</b>
%s

💡 <b>هاشتاغات مقترحة:</b>
%s

🎟 المحاولات المتبقية: %s`

const reportTemplateEn = `✅ <b>TikTok Profile Report</b>

👤 User: @%s
📊 Followers: %d
➡️ Following: %d
🎬 Videos: %d
❤️ Total likes: %d
📈 Engagement rate: %s%%

💡 <b>Best posting hours (%s):</b>
%s

💡 <b>Suggested hashtags:</b>
%s

🎟 Remaining attempts: %s`

const (
	topVideosHeaderAr = "📌 أفضل الفيديوهات حسب المشاهدات:"
	topVideosHeaderEn = "📌 Top videos by views:"

	chartCaptionAr = "📊 أفضل الفيديوهات حسب المشاهدات"
	chartCaptionEn = "📊 Top videos by views"
)

// BuildReport assembles the final report text for the chosen country's
// language. remaining is already rendered ("2" or the VIP sentinel).
func BuildReport(username string, stats *profile.Stats, entry recommend.Entry, remaining string, topVideos []profile.VideoStat) string {
	template := reportTemplateEn
	videosHeader := topVideosHeaderEn
	if entry.Lang == "ar" {
		template = reportTemplateAr
		videosHeader = topVideosHeaderAr
	}

	report := fmt.Sprintf(template,
		escapeHTML(username),
		stats.Followers,
		stats.Following,
		stats.Videos,
		stats.Likes,
		formatRate(stats.EngagementRate),
		escapeHTML(entry.Name),
		formatLines(entry.Hours),
		strings.Join(entry.Hashtags, " "),
		remaining)

	if len(topVideos) > 0 {
		var lines []string
		for _, v := range topVideos {
			lines = append(lines, fmt.Sprintf("• %s | %d", escapeHTML(truncate(v.Title, 30)), v.Views))
		}
		report += "\n\n" + videosHeader + "\n" + strings.Join(lines, "\n")
	}

	return report
}

// ChartCaption returns the photo caption for the top-videos chart.
func ChartCaption(lang string) string {
	if lang == "ar" {
		return chartCaptionAr
	}
	return chartCaptionEn
}

// formatRate renders the engagement percentage without a trailing ".00" for
// whole numbers.
func formatRate(rate float64) string {
	s := fmt.Sprintf("%.2f", rate)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func formatLines(items []string) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

func escapeHTML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}
