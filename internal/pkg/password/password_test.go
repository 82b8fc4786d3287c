package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "Secret123!" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !Verify("Secret123!", digest) {
		t.Fatalf("Verify failed for the password that produced the digest")
	}
}

func TestHashProducesFreshSalt(t *testing.T) {
	d1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	d2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !Verify("same-password", d1) || !Verify("same-password", d2) {
		t.Fatalf("both digests must verify against the original password")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	digest, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if Verify("wrong-password", digest) {
		t.Fatalf("Verify must fail for a different password")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$zz$garbage"} {
		if Verify("anything", digest) {
			t.Fatalf("Verify must treat malformed digest %q as a mismatch", digest)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ValidatePassword("short") {
		t.Fatalf("passwords under %d characters must be rejected", MinLength)
	}
	if !ValidatePassword("longenough") {
		t.Fatalf("passwords of %d+ characters must be accepted", MinLength)
	}
}
