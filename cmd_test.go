package softvg

import "testing"

func TestBuildCmdBuf(t *testing.T) {
	cb := BuildCmdBuf(func(b *CmdBufBuilder) {
		tri := b.BuildPath(func(pb *PathBuilder) {
			pb.MoveTo(Pt(0, 0))
			pb.LineTo(Pt(10, 0))
			pb.LineTo(Pt(5, 8))
			pb.ClosePath()
		})

		stops := b.BuildGradientStops(func(add func(offset float32, color uint32)) {
			add(0, 0xffff0000)
			add(1, 0xff0000ff)
		})
		lid := b.PushLinearGradient(LinearGradient{
			P0: Pt(0, 0), P1: Pt(10, 0), Tfx: Identity(), Stops: stops,
		})
		rid := b.PushRadialGradient(RadialGradient{
			Cp: Pt(5, 5), Cr: 5, Fp: Pt(5, 5), Tfx: Identity(), Stops: stops,
		})

		b.Push(FillPathSolid{Path: tri, Color: 0xff112233})
		b.Push(FillPathLinearGradient{Path: tri, Gradient: lid, Opacity: 1})
		b.Push(FillPathRadialGradient{Path: tri, Gradient: rid, Opacity: 0.5})
		b.Push(StrokePathSolid{Path: tri, Color: 0xff000000, Width: 2})
	})

	if cb.NumCmds() != 4 {
		t.Fatalf("NumCmds = %d, want 4", cb.NumCmds())
	}

	solid, ok := cb.Cmd(0).(FillPathSolid)
	if !ok || solid.Color != 0xff112233 {
		t.Errorf("cmd 0 = %#v", cb.Cmd(0))
	}

	lin, ok := cb.Cmd(1).(FillPathLinearGradient)
	if !ok {
		t.Fatalf("cmd 1 = %#v", cb.Cmd(1))
	}
	lg := cb.LinearGradient(lin.Gradient)
	if len(lg.Stops) != 2 || lg.Stops[0].Color != 0xffff0000 {
		t.Errorf("linear gradient = %+v", lg)
	}

	rad, ok := cb.Cmd(2).(FillPathRadialGradient)
	if !ok || rad.Opacity != 0.5 {
		t.Fatalf("cmd 2 = %#v", cb.Cmd(2))
	}
	rg := cb.RadialGradient(rad.Gradient)
	if rg.Cr != 5 || rg.Fp != Pt(5, 5) {
		t.Errorf("radial gradient = %+v", rg)
	}

	stroke, ok := cb.Cmd(3).(StrokePathSolid)
	if !ok || stroke.Width != 2 {
		t.Errorf("cmd 3 = %#v", cb.Cmd(3))
	}
}

func TestCmdBufSharedPathBuilder(t *testing.T) {
	// BuildPath reuses one builder; built paths must stay independent.
	var p1, p2 *Path
	BuildCmdBuf(func(b *CmdBufBuilder) {
		p1 = b.BuildPath(func(pb *PathBuilder) {
			pb.MoveTo(Pt(0, 0))
			pb.LineTo(Pt(1, 1))
		})
		p2 = b.BuildPath(func(pb *PathBuilder) {
			pb.MoveTo(Pt(9, 9))
			pb.LineTo(Pt(8, 8))
			pb.LineTo(Pt(7, 9))
			pb.ClosePath()
		})
	})

	if len(p1.Verbs()) != 3 { // BeginOpen, Line, End
		t.Errorf("p1 verbs = %v", p1.Verbs())
	}
	if p1.Points()[0] != Pt(0, 0) {
		t.Errorf("p1 start = %v", p1.Points()[0])
	}
	if p2.Verbs()[0] != VerbBeginClosed {
		t.Errorf("p2 begin = %v", p2.Verbs()[0])
	}
}

func TestGradientIDsDense(t *testing.T) {
	BuildCmdBuf(func(b *CmdBufBuilder) {
		for i := 0; i < 3; i++ {
			id := b.PushLinearGradient(LinearGradient{Tfx: Identity()})
			if int(id) != i {
				t.Errorf("linear id = %d, want %d", id, i)
			}
		}
		for i := 0; i < 3; i++ {
			id := b.PushRadialGradient(RadialGradient{Tfx: Identity()})
			if int(id) != i {
				t.Errorf("radial id = %d, want %d", id, i)
			}
		}
	})
}
