package errors

var (
	// Connection requests
	ErrRequestAlreadySent = AlreadyExists("Demande déjà envoyée")
	ErrAlreadyConnected   = AlreadyExists("Vous êtes déjà amis")
	ErrRequestNotFound    = NotFound("Demande introuvable")
	ErrConnectionNotFound = NotFound("Aucune relation trouvée")
	ErrMissingTarget      = InvalidArg("artistId ou theaterId requis")
	ErrInvalidDecision    = InvalidArg("action doit être accept ou reject")

	// Profiles
	ErrProfileNotFound = NotFound("Profil introuvable")
	ErrNoProfile       = InvalidArg("Aucun profil artiste ou théâtre")
	ErrProfileExists   = AlreadyExists("Un profil existe déjà pour ce compte")
	ErrInvalidRole     = InvalidArg("Le rôle doit être artist ou theater")
	ErrEmptyName       = InvalidArg("Le nom est requis")

	// Accounts
	ErrUnauthenticated    = Unauthorized("Non autorisé")
	ErrInvalidCredentials = Unauthorized("Identifiants invalides")
	ErrEmailTaken         = AlreadyExists("Cet email est déjà utilisé")
	ErrInvalidSignup      = InvalidArg("Email et mot de passe (8 caractères minimum) requis")

	// Messaging
	ErrConversationNotFound = NotFound("Conversation introuvable")
	ErrNotParticipant       = Forbidden("Vous ne participez pas à cette conversation")
	ErrEmptyMessage         = InvalidArg("Le message ne peut pas être vide")
	ErrSelfConversation     = InvalidArg("Impossible de démarrer une conversation avec soi-même")
	ErrNotConnected         = Forbidden("Vous devez être amis pour discuter")
	ErrUserNotFound         = NotFound("Utilisateur introuvable")

	// Posters
	ErrPosterNotFound = NotFound("Affiche introuvable")
	ErrNotPosterOwner = Forbidden("Cette affiche ne vous appartient pas")
	ErrInvalidPoster  = InvalidArg("L'URL de l'image est requise")
	ErrEmptyComment   = InvalidArg("Le commentaire ne peut pas être vide")

	ErrInvalidBody = InvalidArg("Corps de requête invalide")
)
