package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cloudsky01/gh-restatus/pkg/models"
)

func TestStateIcon(t *testing.T) {
	th := Default()

	tests := []struct {
		state models.State
		icon  string
	}{
		{models.StateSuccess, th.Icons.Success},
		{models.StateFailure, th.Icons.Failure},
		{models.StateError, th.Icons.Error},
		{models.StatePending, th.Icons.Pending},
		{models.StateExpected, th.Icons.Expected},
		{models.State("unknown"), th.Icons.Expected},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			icon, _ := th.StateIcon(tt.state)
			assert.Equal(t, tt.icon, icon)
			assert.Contains(t, th.RenderState(tt.state), string(tt.state))
		})
	}
}

func TestDivider(t *testing.T) {
	th := Default()
	assert.Equal(t, "", th.Divider(0))
	assert.Equal(t, 5, strings.Count(th.Divider(5), "─"))
}

func TestFormTheme(t *testing.T) {
	assert.NotNil(t, Default().Form())
}
