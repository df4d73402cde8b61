package provider

import (
	"fmt"
	"strings"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/relevance"
)

// taskSchema is the JSON contract every provider is asked to fill. The
// normalizer depends on these exact field names.
const taskSchema = `{"summary": "<kısa özet>", "tasks": [{"title": "<en fazla 60 karakter>", "description": "<görev açıklaması>", "priority": "high|medium|low", "is_urgent": true, "deadline": "<varsa tarih, yoksa boş>", "category": "action|reminder|deadline", "meeting_date": "<kaynak toplantı tarihi>", "meeting_topic": "<kaynak toplantı konusu>"}]}`

const askInstructions = `Sen bir toplantı kararları asistanısın. Aşağıdaki toplantı kayıtlarına dayanarak soruyu yanıtla. Yalnızca kayıtlarda geçen bilgileri kullan; kayıtlarda olmayan bir şeyi uydurma. Kısa ve net yanıt ver.`

const analyzeInstructions = `Sen bir toplantı kararları analistisin. Aşağıdaki toplantı kararından yapılması gereken görevleri çıkar. SADECE şu şemada geçerli bir JSON nesnesi döndür, başka metin ekleme:`

const extractInstructions = `Sen bir toplantı kararları analistisin. Aşağıdaki toplantı kayıtlarından en önemli görevleri çıkar. En fazla 8 görev döndür, önem sırasına göre sırala. SADECE şu şemada geçerli bir JSON nesnesi döndür, başka metin ekleme:`

// buildAskPrompt assembles the Q&A prompt from the top relevance-ranked
// meetings so request size stays bounded.
func buildAskPrompt(question string, ranked []relevance.Scored, scrub func(string) string) string {
	var b strings.Builder
	b.WriteString(askInstructions)
	b.WriteString("\n\nToplantı kayıtları:\n")
	for i, s := range ranked {
		writeMeeting(&b, i+1, s.Meeting, scrub)
	}
	b.WriteString("\nSoru: ")
	b.WriteString(scrub(question))
	return b.String()
}

// buildAnalyzePrompt assembles the single-meeting analysis prompt.
func buildAnalyzePrompt(m meeting.Ref, scrub func(string) string) string {
	var b strings.Builder
	b.WriteString(analyzeInstructions)
	b.WriteString("\n")
	b.WriteString(taskSchema)
	b.WriteString("\n\nToplantı:\n")
	writeMeeting(&b, 1, m, scrub)
	return b.String()
}

// buildExtractPrompt assembles the batch extraction prompt.
func buildExtractPrompt(meetings []meeting.Ref, scrub func(string) string) string {
	var b strings.Builder
	b.WriteString(extractInstructions)
	b.WriteString("\n")
	b.WriteString(taskSchema)
	b.WriteString("\n\nToplantı kayıtları:\n")
	for i, m := range meetings {
		writeMeeting(&b, i+1, m, scrub)
	}
	return b.String()
}

func writeMeeting(b *strings.Builder, n int, m meeting.Ref, scrub func(string) string) {
	fmt.Fprintf(b, "%d. [%s] %s\n", n, m.Date, scrub(m.Topic))
	fmt.Fprintf(b, "   Karar: %s\n", scrub(m.DecisionText))
	if m.Notes != "" {
		fmt.Fprintf(b, "   Notlar: %s\n", scrub(m.Notes))
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(b, "   Etiketler: %s\n", strings.Join(m.Tags, ", "))
	}
	if m.Revised() {
		fmt.Fprintf(b, "   (Revize: %s / %s)\n", m.RevisedFromTopic, m.RevisedFromDate)
	}
}
