package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Live quiz ─────────────────────────────────────────────────────
	ErrNameRequired    ErrCode = "NAME_REQUIRED"
	ErrCodeRequired    ErrCode = "CODE_REQUIRED"
	ErrInvalidJoinCode ErrCode = "INVALID_JOIN_CODE"
	ErrSessionExpired  ErrCode = "SESSION_EXPIRED"
	ErrNoQuizSelected  ErrCode = "NO_QUIZ_SELECTED"
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"
	ErrPlayerNotFound  ErrCode = "PLAYER_NOT_FOUND"
	ErrNotInProgress   ErrCode = "NOT_IN_PROGRESS"
	ErrAnswerRequired  ErrCode = "ANSWER_REQUIRED"
	ErrNotFinished     ErrCode = "NOT_FINISHED"

	// ─── Quiz generation ───────────────────────────────────────────────
	ErrFileRequired     ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile  ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge     ErrCode = "FILE_TOO_LARGE"
	ErrPDFNoText        ErrCode = "PDF_NO_TEXT"
	ErrGenerationFailed ErrCode = "GENERATION_FAILED"
	ErrGeneratorBusy    ErrCode = "GENERATOR_BUSY"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials. Please check your name, class, and password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrTeacherAccessOnly:
		return "This resource is restricted to the teacher."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Live quiz ─────────────────────────────────────────────────────
	case ErrNameRequired:
		return "Please enter your name."
	case ErrCodeRequired:
		return "Please enter the quiz code."
	case ErrInvalidJoinCode:
		return "Invalid quiz code. Please check and try again."
	case ErrSessionExpired:
		return "This quiz has ended."
	case ErrNoQuizSelected:
		return "Please select a quiz to go live."
	case ErrNoQuestions:
		return "This quiz has no questions."
	case ErrPlayerNotFound:
		return "No live quiz attempt found for this player."
	case ErrNotInProgress:
		return "No quiz in progress."
	case ErrAnswerRequired:
		return "Answer the current question before moving on."
	case ErrNotFinished:
		return "The quiz is not finished yet."

	// ─── Quiz generation ───────────────────────────────────────────────
	case ErrFileRequired:
		return "No PDF file provided."
	case ErrUnsupportedFile:
		return "Unsupported file type. Please upload a PDF."
	case ErrFileTooLarge:
		return "File size exceeds the limit."
	case ErrPDFNoText:
		return "PDF does not contain enough text content to generate questions."
	case ErrGenerationFailed:
		return "An error occurred while generating the quiz. Please try again."
	case ErrGeneratorBusy:
		return "A quiz is already being generated. Please wait."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
