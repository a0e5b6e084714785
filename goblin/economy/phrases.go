package economy

var RoastLines = []string{
	"Your code runs, but only because the bugs are afraid of you. 😎",
	"You've got 99 problems, and a semicolon is definitely one of them. ;)",
	"If your code can run, it can also stumble. And wow, does it stumble. 🐧",
	"Stack Overflow called. They want their top customer back. 📞",
	"You call it a feature, I call it \"mutated requirements\". 🤡",
}

var MotivationLines = []string{
	"Every line of code is XP for your future self. 💪",
	"Small steps are still steps forward. 🚶‍♂️",
	"You don't need to be perfect, just a bit better than yesterday. 🌱",
	"Found a bug? Nice, that's a free lesson. 🐛➡️✨",
	"10 minutes of focus beats an hour of procrastination. ⏱️",
	"Your future self will thank you for every minute you invest today. 🔮",
}
