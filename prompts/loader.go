package prompts

import (
	_ "embed"
)

//go:embed chapter_comprehensive.txt
var ChapterComprehensive string

//go:embed subtopics.txt
var Subtopics string

//go:embed subtopic_explanation.txt
var SubtopicExplanation string

//go:embed youtube_query.txt
var YoutubeQuery string

//go:embed course_description.txt
var CourseDescription string

//go:embed image_term.txt
var ImageTerm string

//go:embed mcq.txt
var MCQ string

//go:embed transcript_summary.txt
var TranscriptSummary string

//go:embed roadmap.txt
var Roadmap string

//go:embed quiz.txt
var Quiz string

//go:embed voice_chat.txt
var VoiceChat string
