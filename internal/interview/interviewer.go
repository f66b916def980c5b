package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gdsc-alina/alina/internal/ai"
	"github.com/gdsc-alina/alina/internal/referential"
)

// maxAssistantTurns is the interviewer's own message budget per person.
const maxAssistantTurns = 10

const interviewerRules = `RULES:
You must be polite and considerate.
All your messages should be short and concise: no Markdown, no bullet points, no lists. Just a short paragraph of maximum 3 sentences.
Do not mention the list of information you need to collect; just ask targeted questions to get specific information quickly.
Do not provide job recommendations yet.
You must always respond in English.
`

const detailsFormat = `Respond with a single JSON object with these fields:
- "next_message" (string): the next message to ask the user for more information. You HAVE to provide a message here.
- "age" (integer or null): the age of the interviewee.
- "confidence_in_age" (integer or null): confidence level (1-10) in the reported age.
- "city" (string or null): the city of residence of the interviewee.
- "ability_to_relocate" (boolean or null): whether the interviewee is willing to relocate.
- "intent" (string or null): one of "EMPLOYMENT", "TRAINING", "INFORMATION".
- "education_level" (integer or null): Brazilian educational level, 1 to 12:
  1 Ensino Fundamental, 2 Ensino Médio, 3 Técnico, 4 Tecnólogo, 5 Graduação, 6 Bacharelado,
  7 Licenciatura, 8 Pós-graduação, 9 Especialização, 10 Mestrado, 11 MBA, 12 Doutorado.
- "domain_of_interest" (string or null): the domain of interest of the interviewee.
- "years_of_experience" (integer or null): years of experience in the domain of interest.
- "skills" (string or null): skills and proficiency levels (1 Básico, 2 Intermediário or 3 Avançado), if applicable.
`

// aiInterviewer keeps the conversation history and asks the model for the
// next structured turn.
type aiInterviewer struct {
	gen          ai.Generator
	systemPrompt string
	history      []string
	logger       *zap.Logger
}

// NewInitialInterviewer conducts the first-contact interview collecting the
// base profile.
func NewInitialInterviewer(gen ai.Generator, logger *zap.Logger) Interviewer {
	prompt := `DESCRIPTION:
You are a front desk agent responsible for directing people to the appropriate service.
Your role is to identify basic information about the person in order to pass it on to specialized agents.
These individuals reside in Brazil and are seeking employment, training, or information.
Your name is Alina.
If the person gives you information that is not relevant to your role, politely steer the conversation back to collecting the required information.
The people you assist may be of any educational level and any age, but if the person is under 16 years old, you must politely inform them that you cannot assist them further due to age restrictions.

ROLE:
You have to collect the following information:
- Age
- City of residence and ability to relocate
- Educational level
- Intent: seeking employment, training, or information
- Domain of interest
- Years of experience in the domain of interest
- Skills and proficiency levels (if applicable)

` + interviewerRules
	return &aiInterviewer{gen: gen, systemPrompt: prompt, logger: logger}
}

// NewTrainingInterviewer digs into skills for a persona already known to want
// trainings only. The previous interview summary anchors the conversation.
func NewTrainingInterviewer(gen ai.Generator, skills []*referential.Skill, summary string, logger *zap.Logger) Interviewer {
	prompt := fmt.Sprintf(`DESCRIPTION:
You are a training-focused front desk agent responsible for directing people to the appropriate service.
Your role is to identify which skills the person wants to develop in order to recommend suitable training programs.
Your name is Alina.
If the person gives you information that is not relevant to your role, politely steer the conversation back to collecting the required information.
At the end of the interview, after %d messages, you have to know all the skills the person has, and the skills they want to develop.
SKILLS LIST:
%s
PREVIOUS INTERVIEW SUMMARY:
%s
%s`, maxAssistantTurns, skillsList(skills), summary, interviewerRules)
	return &aiInterviewer{gen: gen, systemPrompt: prompt, logger: logger}
}

// NewJobInterviewer digs into job interests and skills, anchored on the
// previous interview summary.
func NewJobInterviewer(gen ai.Generator, skills []*referential.Skill, jobs []*referential.Job, summary string, logger *zap.Logger) Interviewer {
	prompt := fmt.Sprintf(`DESCRIPTION:
You are a job-focused front desk agent responsible for directing people to the appropriate service.
Your role is to identify which jobs the person is interested in and their skills in order to recommend suitable job opportunities.
Your name is Alina.
If the person gives you information that is not relevant to your role, politely steer the conversation back to collecting the required information.
At the end of the interview, after %d messages, you have to know:
- all jobs the person is interested in
- all the skills the person has
- the skills they want to develop
SKILLS LIST:
%s
JOBS LIST:
%s
PREVIOUS INTERVIEW SUMMARY:
%s
%s`, maxAssistantTurns, skillsList(skills), jobsList(jobs), summary, interviewerRules)
	return &aiInterviewer{gen: gen, systemPrompt: prompt, logger: logger}
}

// NewFullInterviewer runs the single-pass interview covering both the base
// profile and the job/skill deep dive.
func NewFullInterviewer(gen ai.Generator, skills []*referential.Skill, jobs []*referential.Job, logger *zap.Logger) Interviewer {
	prompt := fmt.Sprintf(`DESCRIPTION:
You are a front desk agent responsible for directing people to the appropriate service.
Your role is to identify basic information about the person in order to pass it on to specialized agents.
These individuals reside in Brazil and are seeking employment, training, or information.
Your name is Alina.
If the person gives you information that is not relevant to your role, politely steer the conversation back to collecting the required information.
The people you assist may be of any educational level and any age, but if the person is under 16 years old, you must politely inform them that you cannot assist them further due to age restrictions.
At the end of the interview, after %d messages, you have to know:
- all jobs the person is interested in
- all the skills the person has
- the skills they want to develop
ROLE:
You have to collect the following information (ideally in this order or as close as possible):
- Age
- City of residence and ability to relocate
- Educational level
- Intent: seeking employment, training, or information
- Domain of interest
- Years of experience in the domain of interest
- Skills and proficiency levels (if applicable)
SKILLS LIST:
%s
JOBS LIST:
%s
%s
ADDITIONAL CHECKS:
If the person claims to be older than 16 years old, it's hard to believe they are still in school, especially in ensino fundamental.
If in doubt about the authenticity of the information provided (e.g., age, experience, skills), ask follow-up questions to clarify and verify the details.
`, maxAssistantTurns, skillsList(skills), jobsList(jobs), interviewerRules)
	return &aiInterviewer{gen: gen, systemPrompt: prompt, logger: logger}
}

func (i *aiInterviewer) Start(ctx context.Context) (*Details, error) {
	details, err := i.turn(ctx, "Your first message is the prompt, to give your name, greet the person and ask for their information.")
	if err != nil {
		return nil, err
	}
	i.recordAssistant(details)
	return details, nil
}

func (i *aiInterviewer) Send(ctx context.Context, message string) (*Details, error) {
	i.history = append(i.history, "User said:\n"+message)

	remaining := maxAssistantTurns - len(i.history)/2
	if remaining < 0 {
		remaining = 0
	}
	prompt := fmt.Sprintf("You have %d messages left to collect the required information, what is your next message?", remaining)
	if remaining == 0 {
		prompt = "You have reached the maximum number of messages allowed. Politely inform the person that the interview is complete and that you will send them the list of results (jobs and/or trainings)."
	}

	details, err := i.turn(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if ageNeedsClarification(details) {
		clarified, err := i.turn(ctx, "We have low confidence in the reported age. Please ask a follow-up question to clarify and verify the interviewee's age.")
		if err != nil {
			return nil, err
		}
		if clarified.NextMessage != "" {
			details.NextMessage = clarified.NextMessage
		}
	}

	i.recordAssistant(details)
	return details, nil
}

// ageNeedsClarification flags a low-confidence age, or an adult claiming to
// still be in basic education.
func ageNeedsClarification(details *Details) bool {
	if details.ConfidenceInAge != nil && *details.ConfidenceInAge <= 5 {
		return true
	}
	return details.Age != nil && *details.Age > 16 &&
		details.EducationLevel != nil && *details.EducationLevel <= 2
}

func (i *aiInterviewer) turn(ctx context.Context, instruction string) (*Details, error) {
	var b strings.Builder
	b.WriteString(i.systemPrompt)
	b.WriteString("\n")
	for _, entry := range i.history {
		b.WriteString(entry)
		b.WriteString("\n\n")
	}
	b.WriteString(instruction)
	b.WriteString("\n\n")
	b.WriteString(detailsFormat)

	details, err := ai.Structured[Details](ctx, i.gen, b.String())
	if err != nil {
		return nil, fmt.Errorf("interview turn: %w", err)
	}
	return details, nil
}

func (i *aiInterviewer) recordAssistant(details *Details) {
	if details.NextMessage != "" {
		i.history = append(i.history, "Alina assistant said:\n"+details.NextMessage)
	}
}

func skillsList(skills []*referential.Skill) string {
	var b strings.Builder
	for _, skill := range skills {
		jobs := "none"
		if skill.Jobs != nil {
			jobs = *skill.Jobs
		}
		fmt.Fprintf(&b, " - %s (e.g. for jobs: %s)\n", skill.Name, jobs)
	}
	return b.String()
}

func jobsList(jobs []*referential.Job) string {
	var b strings.Builder
	for _, job := range jobs {
		fmt.Fprintf(&b, " - %s\n", job.Description)
	}
	return b.String()
}

// mockInterviewer replays a fixed script for offline runs.
type mockInterviewer struct {
	started bool
}

// NewMockInterviewer returns the scripted offline interviewer.
func NewMockInterviewer() Interviewer {
	return &mockInterviewer{}
}

func (m *mockInterviewer) Start(_ context.Context) (*Details, error) {
	m.started = true
	return &Details{
		NextMessage: "Hello! I'm Alina, your virtual assistant. To get started, could you please tell me your age?",
	}, nil
}

func (m *mockInterviewer) Send(_ context.Context, _ string) (*Details, error) {
	age, education, experience := 25, 5, 3
	city := "São Paulo"
	relocate := true
	intent := "EMPLOYMENT"
	domain := "Technology"
	skills := "Python (advanced), Java (intermediate)"
	return &Details{
		NextMessage:       "Thanks for that",
		Age:               &age,
		City:              &city,
		AbilityToRelocate: &relocate,
		Intent:            &intent,
		EducationLevel:    &education,
		DomainOfInterest:  &domain,
		YearsOfExperience: &experience,
		Skills:            &skills,
	}, nil
}
