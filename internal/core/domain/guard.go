package domain

// MutationCheck evaluates a guarded mutation against the locked state of the
// target account and the number of admins at the time of the write.
type MutationCheck func(current Account, privilegedCount int) error

// CheckEmailAvailable rejects account creation when an account already holds
// the email. The match is exact; no normalization happens here.
func CheckEmailAvailable(existing *Account) error {
	if existing != nil {
		return ErrDuplicateEmail
	}
	return nil
}

// CheckRoleChange rejects demoting the last admin.
func CheckRoleChange(current Account, next Role, privilegedCount int) error {
	if current.Role.Privileged() && !next.Privileged() && privilegedCount <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// CheckRemoval rejects deleting the last admin. Standard accounts are always
// removable.
func CheckRemoval(current Account, privilegedCount int) error {
	if current.Role.Privileged() && privilegedCount <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// PatchCheck adapts CheckRoleChange to a patch. Patches without a role change
// are accepted.
func PatchCheck(p AccountPatch) MutationCheck {
	return func(current Account, privilegedCount int) error {
		if p.Role == nil {
			return nil
		}
		return CheckRoleChange(current, *p.Role, privilegedCount)
	}
}
