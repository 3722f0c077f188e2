package advisor

const roadmapSystem = `You are an expert career coach and technical mentor specializing in
creating personalized learning roadmaps. Your roadmaps are practical, actionable, and
designed to help professionals acquire new skills efficiently.`

const roadmapPrompt = `Create a detailed 4-week learning roadmap for the following skills: %s

The roadmap must be structured and include:

1. **Overview**: Brief introduction explaining what will be learned and why it's valuable.

2. **Week 1 - Foundations**:
   - Objectives: What foundational concepts will be covered
   - Resources: Specific courses, tutorials, documentation, or books to study
   - Practice Project: A hands-on project to reinforce learning

3. **Week 2 - Core Concepts**:
   - Objectives: Building on Week 1, what core concepts will be mastered
   - Resources: Recommended learning materials
   - Practice Project: A more advanced project

4. **Week 3 - Advanced Topics**:
   - Objectives: Advanced concepts and real-world applications
   - Resources: Advanced learning materials
   - Practice Project: A comprehensive project

5. **Week 4 - Integration & Mastery**:
   - Objectives: Bringing everything together and mastering the skills
   - Resources: Final learning materials and references
   - Practice Project: A capstone project that demonstrates mastery

6. **Summary & Next Steps**: How to continue learning and apply these skills

Format the output as clean Markdown. Make it practical, specific, and actionable.
Include concrete resource names and project ideas that are achievable within each week.`

const skillGapSystem = `You are an expert career advisor and technical mentor. You help
professionals understand their skill gaps and how to bridge them. Your explanations are
clear, motivating, and actionable.`

const skillGapPrompt = `Analyze and explain the skill gaps for a professional with the following profile:

**Current Skills**: %s

**Missing Skills**: %s

Provide a comprehensive explanation that covers:

1. **Overview**: Brief summary of the skill gaps and their significance.

2. **Why Each Missing Skill Matters**: importance in today's job market, problems it
   helps solve, and how it enhances career prospects.

3. **Connections to Existing Skills**: how the missing skills build upon or complement
   existing skills, and how existing skills provide a foundation for learning them.

4. **Career Path Implications**: roles these skills unlock and opportunities that
   become available.

5. **Actionable Insights**: which skills to learn first and why, how to leverage
   existing skills, and what to expect after acquiring them.

Format the output as clean Markdown. Be specific, motivating, and practical.`

const recommendationsSystem = `You are an expert career advisor specializing in technical skill
development. You provide insightful recommendations for skill acquisition.`

const recommendationsPrompt = `Based on the following current skills: %s

Recommend 5-7 skills that would be valuable to learn next%s.

For each recommended skill, provide:
- Why it's a good next step
- How it connects to existing skills
- What it enables the user to do
- Suggested learning approach

Format as clean Markdown.`
