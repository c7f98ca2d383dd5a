/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package chat

// concernPhrases express anxiety about the report. They are checked
// before every other category so a worried user always gets a
// reassurance-style answer.
var concernPhrases = []string{
	"should i worry", "is this serious", "is this dangerous",
	"should i fear it", "am i at risk", "is it harmful",
	"is it bad", "is it concerning", "should i be concerned",
	"is this alarming", "is this critical", "is it dangerous",
	"do i need to panic", "should i be worried", "is this a problem",
	"does this indicate something serious", "is it risky",
	"am i in danger", "is this harmful for my health",
	"should i consult a doctor immediately", "is it urgent",
	"do i need medical attention", "is it life threatening",
	"am i okay", "am i healthy", "should i take action",
	"should i be cautious", "is this cause for concern",
}

// healthCheckPhrases ask whether the report as a whole looks fine.
var healthCheckPhrases = []string{
	"are my results good", "is my report good", "is everything normal",
	"are my reports normal", "am i healthy", "is my health okay",
	"how are my results", "how is my report", "is my cbc good",
	"are the results fine", "is everything okay", "are my values okay",
	"are my blood test results okay", "does it look fine",
	"is my report okay", "are my results fine", "is my blood test normal",
	"are my blood results good", "is my cbc normal", "is my report fine",
	"are my readings normal", "are my numbers normal",
	"are my counts good", "are my blood levels good",
	"is my health report fine", "is my blood normal",
	"does my report look normal", "am i fine", "am i doing okay",
	"does my health look okay", "does everything look okay",
	"are my readings good", "does it seem normal", "are things normal",
	"does my cbc look good", "are my test results normal",
	"is my blood report okay", "is my cbc fine", "are my cbc values okay",
	"is my cbc report okay", "is my test result good", "am i all right",
	"is my report positive", "is my report negative", "is my blood okay",
	"are there any issues in my report", "is my report clear",
	"is my report showing anything bad", "is my blood fine",
	"am i perfectly healthy", "is everything fine with my report",
	"is my cbc test okay", "is my cbc test normal", "is my health normal",
	"is my blood test fine", "does my test look fine",
	"am i doing well health wise", "are my medical results fine",
	"are my test results fine", "are my results okay",
}

type casualReply struct {
	phrase   string
	response string
}

// casualReplies maps greetings and small talk to canned responses.
// Order matters: the first phrase found in the question wins. Phrases
// are matched on word boundaries so "hi" does not fire inside "high".
var casualReplies = []casualReply{
	// Greetings and small talk
	{"hi", "Hi there! How can I help you understand your CBC report today?"},
	{"hello", "Hello! I'm your CBC assistant. Ask me about any of your report values."},
	{"hey", "Hey! I can help explain what your blood test results mean."},
	{"how are you doing", "I'm doing great, thanks for asking! Would you like to discuss your CBC results?"},
	{"how are you", "I'm doing great, thanks for asking! Would you like to discuss your CBC results?"},
	{"good morning", "Good morning! Hope you're feeling healthy today."},
	{"good afternoon", "Good afternoon! Let's go through your CBC report together."},
	{"good evening", "Good evening! How can I assist you with your blood report today?"},
	{"good night", "Good night! Remember to rest well, it helps your body recover."},
	{"yo", "Hey there! Need help with your CBC report?"},
	{"what's up", "Not much, just here to help you understand your blood report!"},
	{"sup", "Hey! What can I help you with today?"},

	// Gratitude
	{"thank you so much", "It's my pleasure! Glad I could help you out."},
	{"thanks a lot", "You're very welcome! Always happy to help."},
	{"thank you", "You're welcome! I'm glad to help you understand your health better."},
	{"thank u", "You're most welcome!"},
	{"thanks", "No problem! Happy to help you with your report."},
	{"appreciate it", "Glad to hear that! Let me know if you'd like to understand more about your results."},

	// Compliments
	{"you are great", "Thank you! I'm here to make health information easier for you."},
	{"you're awesome", "Thank you! Just doing my job, helping you stay informed."},
	{"good bot", "Thanks! I appreciate that."},
	{"nice work", "Thanks! Glad you liked it."},
	{"well done", "Thank you! Let's keep understanding your health together."},

	// Farewells
	{"talk to you later", "Sure thing! I'll be here whenever you need help with your CBC report."},
	{"goodbye", "Goodbye! Take care of your health."},
	{"bye", "Goodbye! Take care and stay healthy."},
	{"see you", "See you later! Stay safe and healthy!"},

	// Acknowledgments
	{"okay", "Okay! What would you like to know next?"},
	{"ok", "Got it! Let's continue."},
	{"sure", "Sure thing! I'm ready to help."},
	{"yes", "Yes! Please go ahead with your question."},
	{"yep", "Yep! I'm here and ready."},
	{"yeah", "Yeah! Let's continue exploring your report."},
	{"alright", "Alright! Let's get started."},
	{"fine", "Glad to hear that! How can I assist you?"},
	{"cool", "Cool. Let's move ahead."},
	{"great", "Awesome! What's your next question?"},
	{"perfect", "Perfect! Let's continue."},
	{"not really", "That's okay! I can still help if you'd like to know something specific."},
	{"no", "No worries! Let me know if you change your mind."},
}
