package format

import (
	"testing"

	"github.com/devolutions-sync/cirup/internal/resource"
)

func TestRestextParse(t *testing.T) {
	text := "lblBoat=I'm on a boat.\r\n" +
		"lblYolo=You only live once\r\n" +
		"lblDogs=Who let the dogs out?\r\n"

	resources, err := Restext{}.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(resources) != 3 {
		t.Fatalf("Parse() returned %d resources, want 3", len(resources))
	}
	if resources[0] != resource.New("lblBoat", "I'm on a boat.") {
		t.Fatalf("resources[0] = %+v", resources[0])
	}
	if resources[1] != resource.New("lblYolo", "You only live once") {
		t.Fatalf("resources[1] = %+v", resources[1])
	}
	if resources[2] != resource.New("lblDogs", "Who let the dogs out?") {
		t.Fatalf("resources[2] = %+v", resources[2])
	}
}

func TestRestextWrite(t *testing.T) {
	resources := []resource.Resource{
		resource.New("lblBoat", "I'm on a boat."),
		resource.New("lblYolo", "You only live once"),
		resource.New("lblDogs", "Who let the dogs out?"),
	}

	got, err := Restext{}.Write(resources)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "lblBoat=I'm on a boat.\r\n" +
		"lblYolo=You only live once\r\n" +
		"lblDogs=Who let the dogs out?\r\n"

	if got != want {
		t.Fatalf("Write() = %q, want %q", got, want)
	}
}

func TestRestextWriteBytesHasBOM(t *testing.T) {
	data, err := Restext{}.WriteBytes([]resource.Resource{resource.New("k", "v")})
	if err != nil {
		t.Fatalf("WriteBytes() error = %v", err)
	}

	wantBOM := []byte{0xEF, 0xBB, 0xBF}
	if len(data) < 3 || string(data[:3]) != string(wantBOM) {
		t.Fatalf("WriteBytes() missing BOM, got first bytes %v", data[:min(3, len(data))])
	}

	rest := string(data[3:])
	if rest != "k=v\r\n" {
		t.Fatalf("WriteBytes() body = %q, want %q", rest, "k=v\r\n")
	}
}

func TestEscapeNewlines(t *testing.T) {
	got := escapeNewlines("line1\\line2\r\nline3")
	want := `line1\\line2\r\nline3`
	if got != want {
		t.Fatalf("escapeNewlines() = %q, want %q", got, want)
	}
}

func TestRestextParseIgnoresUnmatchedLines(t *testing.T) {
	text := "not a kv line\nk=v\n# comment=maybe\n"
	resources, err := Restext{}.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(resources) != 1 || resources[0] != resource.New("k", "v") {
		t.Fatalf("Parse() = %+v", resources)
	}
}
