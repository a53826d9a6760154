package i18n

// Pack holds every user-facing string for one language.
type Pack struct {
	Code string

	Title            string
	ChatbotTitle     string
	ChatbotSubtitle  string
	WelcomeMessage   string
	LoadingText      string
	InputPlaceholder string
	SendButton       string
	ClearChatButton  string

	NavHome      string
	NavExercises string
	NavAbout     string

	AboutTitle          string
	AboutPageHeading    string
	AboutParagraph1     string
	AboutParagraph2     string
	AboutContactHeading string
	AboutContactInfo    string
	BackToChat          string

	// ErrorMessage is a format string; the failure detail is interpolated
	// with fmt.Sprintf.
	ErrorMessage    string
	NotReadyMessage string

	ExerciseListTitle string
	ExerciseListIntro string
}

const DefaultLang = "tr"

var packs = map[string]Pack{
	"tr": {
		Code:             "tr",
		Title:            "Form Rehberim",
		ChatbotTitle:     "Form Rehberim",
		ChatbotSubtitle:  "Hareketlerin nasıl yapıldığını ve inceliklerini sorun.",
		WelcomeMessage:   "Merhaba! Ben sizin Form Rehberinizim. Squat, Plank, Lunge gibi hareketlerin nasıl yapıldığı, hangi kasları çalıştırdığı gibi konularda bilgi almak için bana spesifik egzersiz adını sorabilirsiniz. Size özel antrenman programları oluşturamam, ancak mevcut egzersizler hakkında detaylı bilgi verebilirim. Hangi hareketi merak ediyorsunuz?",
		LoadingText:      "Cevap Aranıyor...",
		InputPlaceholder: "Örn: Squat nasıl yapılır? / Plank hangi kasları çalıştırır?",
		SendButton:       "Gönder",
		ClearChatButton:  "Sohbeti Temizle",

		NavHome:      "Ana Sayfa",
		NavExercises: "Egzersiz Listesi",
		NavAbout:     "Hakkında",

		AboutTitle:          "Hakkında - Form Rehberim",
		AboutPageHeading:    "Form Rehberim Hakkında",
		AboutParagraph1:     "Bu yapay zeka asistanı, sadece evde veya istediğiniz yerde yapabileceğiniz temel vücut ağırlığı egzersizleri (Squat, Plank, Lunge vb.) hakkında bilgi sağlamak amacıyla tasarlanmıştır. Hareketlerin doğru yapılışı ve temel detayları hakkında sorular sorabilirsiniz.",
		AboutParagraph2:     "Amacımız, temel egzersizleri doğru formda öğrenmenize yardımcı olarak daha bilinçli hareket etmenizi sağlamaktır. Bu asistan, size özel antrenman programları oluşturmaz veya kişisel fitness tavsiyesi vermez, yalnızca mevcut egzersiz kütüphanesindeki bilgileri sunar.",
		AboutContactHeading: "Geri Bildirim",
		AboutContactInfo:    "Uygulama hakkındaki düşüncelerinizi veya karşılaştığınız sorunları belirtirseniz sevinirim.",
		BackToChat:          "Sohbete Geri Dön",

		ErrorMessage:    "Üzgünüm, bir hata oluştu: %s",
		NotReadyMessage: "Chatbot bileşenleri henüz hazır değil. Lütfen bir süre bekleyin veya hata loglarını kontrol edin.",

		ExerciseListTitle: "Egzersiz Listesi",
		ExerciseListIntro: "Aşağıda hakkında bilgi alabileceğiniz egzersizlerin listesini bulabilirsiniz:",
	},
	"en": {
		Code:             "en",
		Title:            "Form Guide",
		ChatbotTitle:     "Form Guide",
		ChatbotSubtitle:  "Ask how exercises are done and their intricacies.",
		WelcomeMessage:   "Hello! I am your Form Guide Assistant. You can ask me for the name of a specific exercise to get information on topics such as how movements like Squat, Plank, Lunge are performed and which muscles they work. I cannot create personalized training programs for you, but I can provide detailed information about existing exercises. Which movement are you curious about?",
		LoadingText:      "Searching for an answer...",
		InputPlaceholder: "E.g., How to do a Squat? / What muscles does Plank work?",
		SendButton:       "Send",
		ClearChatButton:  "Clear Chat",

		NavHome:      "Home",
		NavExercises: "Exercise List",
		NavAbout:     "About",

		AboutTitle:          "About - Form Guide",
		AboutPageHeading:    "About Form Guide",
		AboutParagraph1:     "This AI assistant is designed only to provide information about basic bodyweight exercises (Squat, Plank, Lunge, etc.) that you can do at home or anywhere. You can ask questions about the correct execution and basic details of the movements.",
		AboutParagraph2:     "Our aim is to help you perform basic exercises with the correct form, enabling you to move more consciously. This assistant does not create personalized training programs or provide personal fitness advice, it only presents information from the existing exercise library.",
		AboutContactHeading: "Feedback",
		AboutContactInfo:    "I would appreciate it if you could share your thoughts about the application or any issues you encountered.",
		BackToChat:          "Back to Chat",

		ErrorMessage:    "Sorry, an error occurred: %s",
		NotReadyMessage: "The chatbot components are not ready yet. Please wait a moment or check the error logs.",

		ExerciseListTitle: "Exercise List",
		ExerciseListIntro: "Below you can find the list of exercises you can ask about:",
	},
}

// PackFor returns the string pack for a language code. The second return
// value reports whether the code is recognized.
func PackFor(code string) (Pack, bool) {
	p, ok := packs[code]
	return p, ok
}

// MustPack returns the pack for code, falling back to the default language.
func MustPack(code string) Pack {
	if p, ok := packs[code]; ok {
		return p
	}
	return packs[DefaultLang]
}

// Known reports whether a language code has a pack.
func Known(code string) bool {
	_, ok := packs[code]
	return ok
}
