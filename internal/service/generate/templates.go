package generate

import "strings"

// systemPrompt frames every generation request.
const systemPrompt = "You are an expert technical writer specializing in Standard Operating Procedures."

// defaultTemplate is used for section titles without a dedicated template.
const defaultTemplate = `Generate professional content for the '{section_title}' section of this SOP.

SOP Title: {topic}
Context: {context}`

// promptTemplates maps well-known section titles to tailored prompts.
// Placeholders: {topic}, {context}, {standards}, {section_title}.
var promptTemplates = map[string]string{
	"Purpose": `You are an expert in writing Standard Operating Procedures (SOPs).
Write a clear and concise Purpose section for this SOP.

SOP Title: {topic}
Context: {context}

The Purpose section should:
- Explain WHAT this procedure does
- Explain WHY this procedure is important
- Be 2-4 sentences
- Use formal, professional language

Generate the Purpose section:`,

	"Scope": `Write a Scope section that defines what is included and excluded in this SOP.

SOP Title: {topic}
Context: {context}

The Scope section should:
- Clearly define what is covered
- Specify any limitations or exclusions
- Mention applicable standards or regulations
- Be specific and concise

Generate the Scope section:`,

	"Definitions and Abbreviations": `Provide key definitions and abbreviations for this SOP.

SOP Title: {topic}
Context: {context}

Include:
- Technical terms specific to this procedure
- Abbreviations and acronyms used
- Industry-standard definitions
- Format as a bulleted or numbered list

Generate the Definitions and Abbreviations:`,

	"Responsibilities": `List the roles and their responsibilities in carrying out this SOP.

SOP Title: {topic}
Context: {context}

Include:
- Key personnel roles (Operator, Supervisor, QA, etc.)
- Specific responsibilities for each role
- Use bullet points
- Be clear about who does what

Generate the Responsibilities section:`,

	"Normative References": `List relevant standards, references, and documents applicable to this SOP.

SOP Title: {topic}
Standards: {standards}
Context: {context}

Include:
- International standards (ISO, IEC, ASTM, etc.)
- Internal documents and procedures
- Regulatory requirements
- Use proper citation format

Generate the Normative References section:`,

	"HSE Risk Assessment": `Provide a Health, Safety, and Environment (HSE) risk assessment for this procedure.

SOP Title: {topic}
Context: {context}

Include:
- Potential hazards
- Risk levels (High/Medium/Low)
- Required safety equipment
- Emergency procedures
- Environmental considerations

Generate the HSE Risk Assessment section:`,

	"Equipment and Materials": `List all equipment and materials needed for this procedure.

SOP Title: {topic}
Context: {context}

Include:
- Specific equipment with model/specifications
- Consumable materials
- Calibration requirements
- Quantity requirements

Generate the Equipment and Materials section:`,

	"Test Procedure": `Write a detailed step-by-step test procedure.

SOP Title: {topic}
Context: {context}

Requirements:
- Use numbered steps
- Be clear and unambiguous
- Include critical parameters
- Mention quality checks
- Assume reader has basic technical knowledge

Generate the Test Procedure section:`,

	"Procedure": `Write a detailed step-by-step procedure.

SOP Title: {topic}
Context: {context}

Requirements:
- Use numbered steps
- Be clear and unambiguous
- Include critical parameters
- Mention quality checks

Generate the Procedure section:`,

	"Data Analysis and Requirements": `Describe data analysis methods and requirements.

SOP Title: {topic}
Context: {context}

Include:
- Data collection methods
- Analysis techniques
- Calculations or formulas
- Statistical requirements
- Data recording procedures

Generate the Data Analysis and Requirements section:`,

	"Pass/Fail Criteria": `Define clear pass/fail criteria for this procedure.

SOP Title: {topic}
Context: {context}

Include:
- Specific acceptance criteria
- Quantitative limits or thresholds
- Visual inspection criteria
- References to standards

Generate the Pass/Fail Criteria section:`,

	"Safety Considerations": `Describe safety considerations for this procedure.

SOP Title: {topic}
Context: {context}

Include:
- Hazards and risks
- Required PPE
- Safety protocols
- Emergency procedures

Generate the Safety Considerations section:`,
}

// buildPrompt fills the template for sectionTitle with document context.
func buildPrompt(sectionTitle, topic, context, standards string) string {
	tmpl, ok := promptTemplates[sectionTitle]
	if !ok {
		tmpl = defaultTemplate
	}
	return strings.NewReplacer(
		"{topic}", topic,
		"{context}", context,
		"{standards}", standards,
		"{section_title}", sectionTitle,
	).Replace(tmpl)
}
