package persona

// KeywordRule representa um bucket de palavras-chave com a resposta fixa associada
type KeywordRule struct {
	Name     string   `mapstructure:"name" validate:"required"`
	Keywords []string `mapstructure:"keywords" validate:"required,min=1,dive,required"`
	Reply    string   `mapstructure:"reply" validate:"required"`
}

// Persona reúne o contexto enviado ao modelo e as regras do fallback
type Persona struct {
	Name         string        `mapstructure:"name" validate:"required"`
	Context      string        `mapstructure:"context" validate:"required"`
	Rules        []KeywordRule `mapstructure:"rules" validate:"dive"`
	DefaultReply string        `mapstructure:"default_reply" validate:"required,contains=%s"`
}

const defaultContext = `
You are RameezBot, a friendly AI assistant representing Rameez Bader Khwaja.

About Rameez:
- Full Name: Rameez Bader Khwaja
- Role: Full-Stack Developer and AI Enthusiast
- Location: Karachi, Pakistan
- Education: ADP in Computer Information Systems from Hamdard University
- Currently: Part of Governor Sindh IT Initiative (Panaverse Program)

Technical Skills:
- Frontend: Next.js, TypeScript, React, Tailwind CSS, ShadCN UI, Framer Motion
- Backend: Node.js, Express.js, Prisma, PostgreSQL, REST APIs
- AI & Tools: Python, OpenAI SDK, Gemini API, FastAPI, Agentic AI
- Platforms: Git, GitHub, Vercel, Supabase, Passport.js

Notable Projects:
1. AuthApp Sage - Full-stack authentication system with OAuth, Prisma, PostgreSQL
2. Color Guessing Game - Interactive RGB color matching game
3. Agentic AI Bot - Experimental AI agent with OpenAI SDK and Crew AI

Contact:
- Email: rameezbaderkhwaja@gmail.com
- LinkedIn: linkedin.com/in/rameezbaderkhwaja
- GitHub: github.com/RameezBader

Respond in a friendly, professional manner. Keep answers concise but informative.
If asked about Rameez, provide relevant information from above.
If asked about his projects, skills, or availability for opportunities, be enthusiastic and helpful.
`

// Nomes dos buckets padrão, na ordem de prioridade
const (
	RuleGreeting = "greeting"
	RuleIdentity = "identity"
	RuleProjects = "projects"
	RuleSkills   = "skills"
	RuleContact  = "contact"
	RuleHiring   = "hiring"
)

// Default retorna a persona embutida. Cada chamada devolve uma cópia nova.
func Default() Persona {
	return Persona{
		Name:    "RameezBot",
		Context: defaultContext,
		Rules: []KeywordRule{
			{
				Name:     RuleGreeting,
				Keywords: []string{"hi", "hello", "hey", "assalam"},
				Reply:    "Assalamualaikum! 👋 I'm RameezBot. I can tell you about Rameez Bader Khwaja, his projects, skills, and how to contact him. What would you like to know?",
			},
			{
				Name:     RuleIdentity,
				Keywords: []string{"who", "about", "rameez"},
				Reply:    "Rameez Bader Khwaja is a Full-Stack Developer and AI Enthusiast from Karachi, Pakistan. He's completed his ADP in Computer Information Systems and is currently part of the Governor Sindh IT Initiative (Panaverse Program). He specializes in Next.js, TypeScript, Prisma, and AI integrations!",
			},
			{
				Name:     RuleProjects,
				Keywords: []string{"project", "work", "portfolio"},
				Reply:    "Rameez has built several impressive projects including:\n\n1. **AuthApp Sage** - Full-stack authentication with OAuth\n2. **Color Guessing Game** - Interactive RGB matching game\n3. **Agentic AI Bot** - Experimental AI agent\n\nVisit the Projects section to learn more!",
			},
			{
				Name:     RuleSkills,
				Keywords: []string{"skill", "tech", "stack", "technology"},
				Reply:    "Rameez is skilled in:\n\n**Frontend:** Next.js, TypeScript, React, Tailwind CSS\n**Backend:** Express.js, Prisma, PostgreSQL\n**AI:** Python, OpenAI SDK, Gemini API\n**Tools:** Git, Vercel, Supabase\n\nHe's passionate about building intelligent, scalable applications!",
			},
			{
				Name:     RuleContact,
				Keywords: []string{"contact", "email", "reach", "linkedin"},
				Reply:    "You can reach Rameez at:\n\n📧 Email: rameezbaderkhwaja@gmail.com\n💼 LinkedIn: linkedin.com/in/rameezbaderkhwaja\n🐙 GitHub: github.com/RameezBader\n\nOr use the Feedback form on this website!",
			},
			{
				Name:     RuleHiring,
				Keywords: []string{"hire", "job", "work", "opportunity", "recruit"},
				Reply:    "Great! Rameez is open to opportunities. He's looking for roles in Full-Stack Development and AI Engineering. You can reach him via email at rameezbaderkhwaja@gmail.com or connect on LinkedIn. Feel free to leave a detailed message in the Feedback section!",
			},
		},
		DefaultReply: "I received your message: '%s'. I can help you learn about Rameez, his projects, skills, or how to contact him. What would you like to know?",
	}
}
